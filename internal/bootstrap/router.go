package bootstrap

import (
	"strings"
	"time"

	httpapi "github.com/GoSim-25-26J-441/moonlog-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/auth"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/geocoding"
	moonhttp "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/http"
	moonsvc "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/service"
	logshttp "github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/http"
	logsvc "github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins string
	TextureURL     string
	Logger         *zap.Logger

	DB    httpapi.Pinger
	Cache httpapi.Pinger

	Moon     *moonsvc.PhaseService
	Logs     *logsvc.LogService
	Geocoder geocoding.Searcher

	// AuthVerifier enables Firebase auth on user routes; nil selects the
	// X-User-Id development fallback.
	AuthVerifier auth.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	moonhttp.New(dep.Moon, dep.TextureURL).Register(api.Group("/moon"))

	if dep.Geocoder != nil {
		geocoding.NewHandler(dep.Geocoder).Register(api.Group("/places"))
	}

	if dep.Logs != nil {
		logs := api.Group("/logs")
		if dep.AuthVerifier != nil {
			logs.Use(auth.FirebaseAuthMiddleware(dep.AuthVerifier))
		} else {
			logs.Use(auth.OptionalUser())
		}
		logshttp.New(dep.Logs).Register(logs)
	}

	return r
}

func corsConfig(allowed string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}

	var origins []string
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
