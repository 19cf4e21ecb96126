package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/orderstream"
)

// Event types
const (
	EventOrdersSnapshot = "orders_snapshot"
	EventOrderUpdate    = "order_update"
	EventStaffNotif     = "staff_notification"
	EventMenuUpdate     = "menu_update"
	EventSettingsUpdate = "settings_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type clientState struct {
	role            string
	editingSettings bool
}

// Hub menampung semua client dashboard (staff, admin) dan state per-client.
type Hub struct {
	clients map[*websocket.Conn]*clientState
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]*clientState),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = &clientState{role: role}
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// SetEditingSettings menandai client sedang membuka form settings. Selama
// flag aktif, broadcast settings_update tidak dikirim ke client itu supaya
// isian form tidak tertimpa update dari tempat lain.
func SetEditingSettings(conn *websocket.Conn, editing bool) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	if state, ok := hub.clients[conn]; ok {
		state.editingSettings = editing
	}
}

// ClientCount -> jumlah client yang terhubung saat ini.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastOrdersSnapshot -> view order lengkap yang sudah diurutkan
func BroadcastOrdersSnapshot(orders []models.Order) {
	broadcast(Message{
		Event: EventOrdersSnapshot,
		Data:  orders,
	}, nil)
}

// BroadcastOrderUpdate -> satu order berubah status
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	}, nil)
}

// BroadcastStaffNotification -> notifikasi order baru untuk staff
func BroadcastStaffNotification(notice orderstream.Notice) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  notice,
	}, nil)
}

// BroadcastMenuUpdate -> menu berubah (create/update/delete)
func BroadcastMenuUpdate(item models.MenuItem) {
	broadcast(Message{
		Event: EventMenuUpdate,
		Data:  item,
	}, nil)
}

// BroadcastSettingsUpdate -> settings tersimpan; client yang sedang mengedit
// settings dilewati.
func BroadcastSettingsUpdate(settings models.Settings) {
	broadcast(Message{
		Event: EventSettingsUpdate,
		Data:  settings,
	}, func(state *clientState) bool {
		return state.editingSettings
	})
}

// broadcast -> fungsi internal untuk mengirim pesan; skip bisa nil
func broadcast(msg Message, skip func(*clientState) bool) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, state := range hub.clients {
		if skip != nil && skip(state) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to client with role %s: %v", msg.Event, state.role, err)
		}
	}
}
