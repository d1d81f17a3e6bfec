package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tasksheet/tasksheet-cli/internal/board"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"golang.org/x/time/rate"
)

// Server exposes the board core to the SPA presentation layer.
type Server struct {
	svc    *board.Service
	config model.Config
	router *gin.Engine
}

func NewServer(svc *board.Service, config model.Config) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	origins := config.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(RateLimiter(rate.Limit(20), 40))

	s := &Server{
		svc:    svc,
		config: config,
		router: router,
	}

	router.GET("/health", s.handleHealth)

	api := router.Group("/api/v1")
	{
		api.GET("/tasks", s.handleGetTasks)
		api.PUT("/tasks", s.handleReplaceTasks)
		api.POST("/tasks", s.handleAddTask)
		api.POST("/tasks/:id/move", s.handleMoveTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/complete", s.handleCompleteTask)
		api.POST("/tasks/:id/reopen", s.handleReopenTask)
		api.POST("/tasks/:id/timer/start", s.handleStartTimer)
		api.POST("/tasks/:id/timer/pause", s.handlePauseTimer)
		api.GET("/history", s.handleGetHistory)
		api.GET("/history/:date", s.handleGetSnapshot)
		api.GET("/stats/dashboard", s.handleDashboard)
		api.GET("/export/:kind", s.handleExport)
	}

	return s
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
