package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rika4698/event-management-server/config"
	"github.com/Rika4698/event-management-server/internal/auditlog"
	"github.com/Rika4698/event-management-server/internal/auth"
	"github.com/Rika4698/event-management-server/internal/event"
	"github.com/Rika4698/event-management-server/middleware"
)

func Setup(r *gin.Engine, cfg *config.Config, db *gorm.DB, auditSvc auditlog.Service) {
	r.Use(middleware.AuditMiddleware()) // capture IP + request id for audit entries

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Event Management Application")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// ========== Auth ==========
	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg, auditSvc)
	authHandler := auth.NewHandler(authSvc)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ========== Events ==========
	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, auditSvc)
	eventHandler := event.NewHandler(eventSvc)

	// Public listing routes
	r.GET("/events", eventHandler.ListEvents)
	r.GET("/events-limited", eventHandler.ListRecent)

	// Everything touching a single event requires a token
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.POST("/events", eventHandler.CreateEvent)
		protected.GET("/event/:id", eventHandler.GetEventByID)
		protected.PUT("/event/:id", eventHandler.UpdateEvent)
		protected.DELETE("/event/:id", eventHandler.DeleteEvent)
		protected.POST("/join/:id", eventHandler.JoinEvent)
		protected.GET("/my-events/:userId", eventHandler.MyEvents)
	}
}
