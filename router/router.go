package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/smartcafe/ordering-app/controllers"
	"github.com/smartcafe/ordering-app/middlewares"
	"github.com/smartcafe/ordering-app/services"
)

func SetupRouter(db *gorm.DB, storage services.ImageStorage) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.PrometheusMiddleware())

	// Rate limiter global per IP, dipasang sebelum route didaftarkan
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Inisialisasi controller
	authCtrl := controllers.NewAuthController(db)
	staffCtrl := controllers.NewStaffController(db)
	orderCtrl := controllers.NewOrderController(db)
	menuCtrl := controllers.NewMenuController(db, storage)
	settingsCtrl := controllers.NewSettingsController(db)
	billCtrl := controllers.NewBillController(db)
	qrCtrl := controllers.NewQRController()
	reportCtrl := controllers.NewReportController(db)
	activityCtrl := controllers.NewActivityController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiter khusus untuk endpoint kredensial
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", authCtrl.Login)
		public.POST("/forgot-password", authCtrl.ForgotPassword)
		public.POST("/reset-password", authCtrl.ResetPassword)
	}

	// -- CUSTOMER (tanpa auth) --
	r.GET("/menus", menuCtrl.GetAvailableMenu)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/tables/orders", orderCtrl.GetOrdersForTable)
	r.GET("/settings", settingsCtrl.GetSettings)

	// Feed WebSocket dashboard (token lewat query param)
	r.GET("/feed/ws", middlewares.WebSocketAuthMiddleware(), controllers.FeedHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", authCtrl.Profile)
	auth.POST("/logout", authCtrl.Logout)

	// ORDERS (staff/admin)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	auth.POST("/orders/bulk-delete", orderCtrl.BulkDeleteOrders)

	// Bill download dengan middleware logger
	billGroup := auth.Group("/orders")
	billGroup.Use(middlewares.BillLoggerMiddleware())
	{
		billGroup.GET("/:order_id/bill", billCtrl.DownloadBill)
	}

	// MENUS (staff/admin)
	auth.GET("/menus", menuCtrl.GetAllMenuItems)
	auth.POST("/menus", menuCtrl.CreateMenuItem)
	auth.PATCH("/menus/:menu_id", menuCtrl.UpdateMenuItem)
	auth.DELETE("/menus/:menu_id", menuCtrl.DeleteMenuItem)
	auth.POST("/menus/:menu_id/image", menuCtrl.UploadMenuImage)

	// QR meja (staff/admin)
	auth.GET("/tables/qr", qrCtrl.GetTableQR)
	auth.GET("/tables/qr/download", qrCtrl.DownloadTableQR)

	// Admin-only
	adminOnly := auth.Group("/")
	adminOnly.Use(middlewares.RequireRole("admin"))
	{
		adminOnly.GET("/staff", staffCtrl.GetAllStaff)
		adminOnly.POST("/staff", staffCtrl.CreateStaff)
		adminOnly.DELETE("/staff/:staff_id", staffCtrl.DeleteStaff)

		adminOnly.PATCH("/settings", settingsCtrl.UpdateSettings)
		adminOnly.GET("/reports/sales.csv", reportCtrl.ExportSalesCSV)
		adminOnly.GET("/activity-logs", activityCtrl.GetActivityLogs)
	}

	return r
}
