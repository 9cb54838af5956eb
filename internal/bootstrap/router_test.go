package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	moondomain "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
	moonsvc "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/service"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/geocoding"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type noPlaces struct{}

func (noPlaces) Search(context.Context, string) ([]geocoding.Place, error) {
	return []geocoding.Place{}, nil
}

func testRouter(origins string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return BuildRouter(RouterDeps{
		ServiceName:    "moonlog",
		Version:        "test",
		AllowedOrigins: origins,
		Moon:           moonsvc.NewPhaseService(nil, moondomain.Location{Latitude: 0, Longitude: 0, Timezone: "UTC"}),
		Geocoder:       noPlaces{},
	})
}

func TestBuildRouter_Routes(t *testing.T) {
	r := testRouter("*")

	for _, path := range []string{"/health", "/healthz", "/api/v1/moon?date=2024-04-23", "/api/v1/moon/outline?phase=0.3", "/api/v1/places?q=x"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"), path)
	}

	// no log service configured
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBuildRouter_CORS(t *testing.T) {
	r := testRouter("https://moon.example, https://app.example")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/moon", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig("*").AllowAllOrigins)
	assert.True(t, corsConfig("").AllowAllOrigins)

	cfg := corsConfig("https://a.example ,https://b.example")
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}
