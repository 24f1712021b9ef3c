package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/orchid-commerce/medallion/internal/pipeline"
	"github.com/orchid-commerce/medallion/internal/warehouse"
)

type Server struct {
	router *gin.Engine
	wh     *warehouse.Warehouse
	res    *pipeline.Result
}

// NewServer creates a new server instance serving the results of a
// pipeline run. The warehouse handle may be nil when running without
// a database; the health endpoint reports it as skipped.
func NewServer(wh *warehouse.Warehouse, res *pipeline.Result) *Server {
	router := gin.Default()

	server := &Server{
		router: router,
		wh:     wh,
		res:    res,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.GET("/runs", s.listRuns)
		api.GET("/quarantine", s.listQuarantine)
		api.GET("/view", s.listView)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	warehouseStatus := "skipped"
	if s.wh != nil {
		warehouseStatus = "ok"
		if err := s.wh.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "error",
				"error":  "warehouse connection failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "medallion",
		"version":   "0.1.0",
		"warehouse": warehouseStatus,
	})
}

// listRuns returns the stage run records of the last pipeline run.
func (s *Server) listRuns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"count": len(s.res.Runs),
		"runs":  s.res.Runs,
	})
}

// listQuarantine returns quarantined rows, optionally filtered by
// reason code (?reason=UNRESOLVED_FK) or entity (?entity=order_items).
func (s *Server) listQuarantine(c *gin.Context) {
	reason := c.Query("reason")
	entity := c.Query("entity")

	rows := make([]models.QuarantineRecord, 0, len(s.res.Quarantine))
	for _, q := range s.res.Quarantine {
		if reason != "" && q.Reason != reason {
			continue
		}
		if entity != "" && q.Entity != entity {
			continue
		}
		rows = append(rows, q)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(rows),
		"records": rows,
	})
}

// listView returns pages of the denormalized order-item view.
func (s *Server) listView(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}

	total := len(s.res.Unified)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"offset": offset,
		"items":  s.res.Unified[offset:end],
	})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
