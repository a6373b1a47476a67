package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	rootMessage   = "Course Enrollment Server Is Running"
	healthTimeout = 2 * time.Second
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the liveness endpoints.
type SystemHandler struct {
	db        Pinger
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a SystemHandler. rdb may be nil when Redis is not configured.
func NewSystemHandler(db Pinger, rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type healthStatus struct {
	Status     string            `json:"status"`
	Uptime     string            `json:"uptime"`
	GoVersion  string            `json:"go_version"`
	Goroutines int               `json:"goroutines"`
	Checks     map[string]string `json:"checks"`
}

// Root godoc
// GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, rootMessage)
}

// Health godoc
// GET /health
// Reports 503 when a backing store does not answer.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := healthStatus{
		Status:     "ok",
		Uptime:     formatDuration(time.Since(h.startTime)),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		Checks:     map[string]string{"database": "ok", "redis": "disabled"},
	}

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Database ping failed")
		status.Status = "degraded"
		status.Checks["database"] = "unreachable"
	}

	if h.rdb != nil {
		status.Checks["redis"] = "ok"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			h.log.Warn().Err(err).Msg("Redis ping failed")
			status.Status = "degraded"
			status.Checks["redis"] = "unreachable"
		}
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
