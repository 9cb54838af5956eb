package http

import (
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/domain"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/service"
)

// maxBodyBytes bounds a create request; base64 inflates the image by 4/3.
const maxBodyBytes = domain.MaxImageBytes*4/3 + 64<<10

// Handler handles HTTP requests for observation logs
type Handler struct {
	svc *service.LogService
}

// New creates a new Handler
func New(svc *service.LogService) *Handler {
	return &Handler{svc: svc}
}

// createLogRequest is the JSON body of POST /logs.
type createLogRequest struct {
	ObservedAt        *time.Time `json:"observed_at"`
	Latitude          *float64   `json:"lat" binding:"required"`
	Longitude         *float64   `json:"lng" binding:"required"`
	LocationName      string     `json:"location_name"`
	Weather           string     `json:"weather" binding:"required"`
	Notes             string     `json:"notes"`
	ImageBase64       string     `json:"image_base64"`
	ImageMime         string     `json:"image_mime"`
	RequestCommentary bool       `json:"request_commentary"`
}
