package api

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"larder/internal/advisor"
	"larder/internal/monitoring"
	"larder/internal/pantry"
)

// PantryStore is the row store contract the transport layer consumes
type PantryStore interface {
	ReadAllRows(ctx context.Context) ([]pantry.Row, error)
	AddRow(ctx context.Context, fields map[string]string) (uint, error)
	UpdateRow(ctx context.Context, id uint, fields map[string]string) error
}

// Server wires the advisory and pantry endpoints onto a gin router
type Server struct {
	Router    *gin.Engine
	advisor   *advisor.Advisor
	store     PantryStore
	monitor   *monitoring.Monitor
	jwtSecret string
}

// NewServer creates the API server over its collaborators
func NewServer(adv *advisor.Advisor, store PantryStore, monitor *monitoring.Monitor, jwtSecret string) *Server {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	s := &Server{
		Router:    router,
		advisor:   adv,
		store:     store,
		monitor:   monitor,
		jwtSecret: jwtSecret,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Larder advisory API is running"})
	})

	// Live advisory over websocket
	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		// Advisory operations
		v1.POST("/advice", s.HandleAdvice)
		v1.POST("/plan", s.HandlePlan)

		// Pantry reads and operational metrics
		v1.GET("/pantry", s.ListPantry)
		v1.GET("/metrics", s.HandleMetrics)

		// Pantry mutations require a token
		protected := v1.Group("", AuthMiddleware(s.jwtSecret))
		protected.POST("/pantry", s.AddPantryRow)
		protected.PUT("/pantry/:id", s.UpdatePantryRow)
	}
}
