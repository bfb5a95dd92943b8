package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/damoang/angple-notes/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports process and datastore liveness
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, database := http.StatusOK, "ok"
	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("health check: database ping failed: %v", err)
		status, database = http.StatusServiceUnavailable, "unavailable"
	}

	c.JSON(status, gin.H{
		"status":   http.StatusText(status),
		"service":  logger.ServiceName,
		"database": database,
		"time":     time.Now().Unix(),
	})
}
