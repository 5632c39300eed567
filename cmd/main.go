package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"

	"github.com/Rika4698/event-management-server/config"
	"github.com/Rika4698/event-management-server/database"
	"github.com/Rika4698/event-management-server/internal/auditlog"
	"github.com/Rika4698/event-management-server/internal/auth"
	"github.com/Rika4698/event-management-server/internal/event"
	"github.com/Rika4698/event-management-server/routes"
	"github.com/Rika4698/event-management-server/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&event.Event{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Init Redis (cache for the homepage preview; optional)
	if cfg.RedisAddr != "" {
		if err := utils.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			log.Printf("⚠️ Redis init failed, continuing without cache: %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}

	// Init Kafka audit pipeline (optional; direct DB writes otherwise)
	auditRepo := auditlog.NewRepository(db)
	var auditWriter *kafka.Writer
	if len(cfg.KafkaBrokers) > 0 {
		auditWriter = utils.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		auditlog.StartConsumer(auditRepo, cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		log.Println("✅ Kafka audit pipeline enabled")
	}
	auditSvc := auditlog.NewService(auditRepo, auditWriter)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, db, auditSvc)

	fmt.Printf("🚀 Event Management Application on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
