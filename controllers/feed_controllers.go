package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler -> endpoint WebSocket dashboard staff/admin. Client menerima
// orders_snapshot, order_update, staff_notification, menu_update dan
// settings_update; satu-satunya pesan inbound yang dikenal adalah flag
// settings_editing.
func FeedHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != models.RoleStaff && role != models.RoleAdmin {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, role)

	type inbound struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var msg inbound
		if json.Unmarshal(raw, &msg) != nil {
			continue
		}
		if msg.Event == "settings_editing" {
			var editing bool
			if json.Unmarshal(msg.Data, &editing) == nil {
				realtime.SetEditingSettings(ws, editing)
			}
		}
	}

	realtime.UnregisterClient(ws)
}
