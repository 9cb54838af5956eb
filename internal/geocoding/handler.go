package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Searcher is implemented by Client.
type Searcher interface {
	Search(ctx context.Context, q string) ([]Place, error)
}

// Handler serves place lookups.
type Handler struct {
	searcher Searcher
}

// NewHandler creates a new Handler
func NewHandler(s Searcher) *Handler {
	return &Handler{searcher: s}
}

// Register registers the place routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.Search)
}

// Search handles GET /places?q=.
func (h *Handler) Search(c *gin.Context) {
	places, err := h.searcher.Search(c.Request.Context(), c.Query("q"))
	if errors.Is(err, ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		logging.For(c.Request.Context(), "places.search").Warn("geocoder failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "place lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}
