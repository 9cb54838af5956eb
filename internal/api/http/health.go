package http

import (
	"context"
	"net/http"
	"time"

	moonsvc "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/service"
	"github.com/gin-gonic/gin"
)

// Pinger is anything that can report liveness; *pgxpool.Pool and the
// snapshot cache both qualify.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Service   string          `json:"service"`
	Version   string          `json:"version"`
	DB        string          `json:"db,omitempty"`
	Redis     string          `json:"redis,omitempty"`
	Moon      moonsvc.Metrics `json:"moon"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	redis       Pinger
}

// NewHealthHandler creates a HealthHandler. db and redis may be nil.
func NewHealthHandler(serviceName, version string, db, redis Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		redis:       redis,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := ping(c.Request.Context(), h.db)
	redisStatus := ping(c.Request.Context(), h.redis)

	// The cache is optional, so only the database decides overall health.
	status, code := "healthy", http.StatusOK
	if dbStatus == "down" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Redis:     redisStatus,
		Moon:      moonsvc.GetMetrics(),
	})
}

func ping(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
