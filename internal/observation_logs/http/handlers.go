package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/auth"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/logging"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateLog saves a new observation for the caller.
func (h *Handler) CreateLog(c *gin.Context) {
	userID := auth.UserFirebaseUID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var body createLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": domain.ErrImageTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := domain.CreateLogRequest{
		UserID:            userID,
		Latitude:          *body.Latitude,
		Longitude:         *body.Longitude,
		LocationName:      body.LocationName,
		Weather:           domain.Weather(strings.ToLower(strings.TrimSpace(body.Weather))),
		Notes:             body.Notes,
		RequestCommentary: body.RequestCommentary,
	}
	if body.ObservedAt != nil {
		req.ObservedAt = *body.ObservedAt
	}
	if body.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(stripDataURL(body.ImageBase64))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidImage.Error()})
			return
		}
		req.Image = &domain.Image{Mime: body.ImageMime, Data: data}
	}

	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ListLogs returns the caller's logs, newest first. Supports ?limit=&offset=.
func (h *Handler) ListLogs(c *gin.Context) {
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
		return
	}

	logs, err := h.svc.List(c.Request.Context(), auth.UserFirebaseUID(c), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}

// GetLog returns one log.
func (h *Handler) GetLog(c *gin.Context) {
	l, err := h.svc.Get(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": l})
}

// GetImage streams the photo attached to a log.
func (h *Handler) GetImage(c *gin.Context) {
	img, err := h.svc.Image(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=86400")
	c.Data(http.StatusOK, img.Mime, img.Data)
}

// DeleteLog removes a log.
func (h *Handler) DeleteLog(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// stripDataURL accepts both raw base64 and "data:image/png;base64,..." input.
func stripDataURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrLogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrMissingUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidWeather),
		errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, domain.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.For(c.Request.Context(), "logs.http").Error("observation log request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
