package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/database"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auth"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/bhajan"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/expense"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/gallery"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/mandapam"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/membership"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/notification"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/schedule"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/routes"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("⚠️ Redis init failed: %v", err)
		log.Println("ℹ️ Continuing without cache")
	}

	// Init Kafka
	utils.InitializeKafka(cfg)

	// Init Firebase
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(cfg); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (Google sign-in will be disabled)")
	} else {
		log.Println("✅ Firebase initialized successfully")
	}

	// Init Cloudinary
	uploader, err := utils.NewUploader(cfg)
	if err != nil {
		panic(fmt.Sprintf("❌ Cloudinary init failed: %v", err))
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&mandapam.Mandapam{},
		&membership.JoinRequest{},
		&membership.VolunteerAssignment{},
		&schedule.Event{},
		&gallery.Image{},
		&gallery.Like{},
		&gallery.Comment{},
		&expense.Expense{},
		&bhajan.Bhajan{},
		&notification.Notification{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	svcs := routes.Setup(router, cfg, db, uploader)

	// Consume membership events into in-app notifications
	notification.StartKafkaConsumer(context.Background(), cfg, svcs.Notification)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("❌ Server failed to start: %v", err))
	}
}
