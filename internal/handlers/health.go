package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/items-api/internal/constants"
	"github.com/yukikurage/items-api/internal/database"
	"github.com/yukikurage/items-api/internal/dto"
	"github.com/yukikurage/items-api/internal/middleware"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db      *gorm.DB
	version string
	started time.Time
	log     *slog.Logger
}

func NewHealthHandler(db *gorm.DB, version string, log *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
		started: time.Now(),
		log:     log,
	}
}

// Health reports liveness without touching the database
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		OK:        true,
		Uptime:    time.Since(h.started).Seconds(),
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}

// Ready reports whether the database answers a ping in time
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.db, constants.ReadinessTimeout); err != nil {
		h.log.Warn("readiness check failed", "requestId", middleware.GetRequestID(c), "error", err)
		c.JSON(http.StatusServiceUnavailable, dto.ReadinessResponse{
			OK:        false,
			Database:  "disconnected",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ReadinessResponse{
		OK:        true,
		Database:  "connected",
		Timestamp: time.Now().UTC(),
	})
}
