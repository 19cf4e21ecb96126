package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"

	"github.com/smartcafe/ordering-app/config"
	"github.com/smartcafe/ordering-app/middlewares"
	"github.com/smartcafe/ordering-app/models"
	"github.com/smartcafe/ordering-app/router"
	"github.com/smartcafe/ordering-app/services"
	"github.com/smartcafe/ordering-app/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Simpan koneksi database untuk dipakai di luar controller
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	middlewares.InitMetrics()

	// Feed order realtime: polling + broadcast snapshot ke websocket
	feed := services.NewOrderFeed(db)
	feed.Start()
	defer feed.Stop()

	// Job pembersihan blacklist token tiap jam
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(1).Hour().Do(utils.PurgeExpiredBlacklist); err != nil {
		utils.ErrorLogger.Printf("Failed to schedule blacklist purge: %v", err)
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	storage, err := services.NewS3StorageFromEnv()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to init image storage: %v", err)
	}
	if storage == nil {
		utils.InfoLogger.Println("S3_ENDPOINT not set, menu image upload disabled")
	}

	r := router.SetupRouter(db, storageOrNil(storage))

	if err := r.SetTrustedProxies([]string{"127.0.0.1", "localhost"}); err != nil {
		utils.ErrorLogger.Printf("Failed to set trusted proxies: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// storageOrNil -> *S3Storage nil tidak boleh dibungkus jadi interface non-nil.
func storageOrNil(s *services.S3Storage) services.ImageStorage {
	if s == nil {
		return nil
	}
	return s
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Staff{},
		&models.MenuItem{},
		&models.Settings{},
		&models.Order{},
		&models.ActivityLog{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	seedAdminAccount(db)
}

// seedAdminAccount membuat akun admin awal dari env saat tabel staff kosong,
// supaya instalasi baru bisa login.
func seedAdminAccount(db *gorm.DB) {
	var count int64
	db.Model(&models.Staff{}).Count(&count)
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.InfoLogger.Println("No staff accounts and ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	if err := services.CreateStaffAccount(db, email, "Administrator", password, models.RoleAdmin); err != nil {
		utils.ErrorLogger.Printf("Failed to seed admin account: %v", err)
		return
	}
	utils.InfoLogger.Printf("Seeded admin account %s", email)
}
