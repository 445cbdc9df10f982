package server

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/common"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/export"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/inventory"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/markets"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/repository"
	"github.com/alexandrejdoliveira-gif/smart-grocery-inventory/internal/scan"
)

// Server wires the services behind the HTTP API.
type Server struct {
	logger    *slog.Logger
	db        *sql.DB
	scan      *scan.Service
	inventory *inventory.Service
	markets   *markets.Service
	export    *export.Service
	engine    *gin.Engine
}

func New(logger *slog.Logger, db *sql.DB, scanSvc *scan.Service, invSvc *inventory.Service, marketsSvc *markets.Service, exportSvc *export.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		logger:    logger,
		db:        db,
		scan:      scanSvc,
		inventory: invSvc,
		markets:   marketsSvc,
		export:    exportSvc,
	}
	s.engine = s.buildEngine()
	return s
}

func (s *Server) buildEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestID(), s.accessLog())

	engine.GET("/healthz", s.health)

	v1 := engine.Group("/v1")
	{
		v1.POST("/receipts/process", s.processReceipt)
		v1.POST("/receipts/check-duplicate", s.checkDuplicate)
		v1.POST("/receipts/accept", s.acceptReceipt)
		v1.POST("/items/confirm", s.confirmItem)
		v1.GET("/inventory", s.listInventory)
		v1.POST("/inventory/:id/quantity", s.adjustQuantity)
		v1.POST("/inventory/:id/finish", s.finishItem)
		v1.GET("/rebuy", s.rebuyList)
		v1.GET("/markets", s.storeSummaries)
		v1.GET("/export/prices.xlsx", s.exportPrices)
	}
	return engine
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), id))
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http.request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
			"request_id", common.RequestIDFromContext(c.Request.Context()),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	if err := repository.HealthCheck(c.Request.Context(), s.db, 3*time.Second); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
