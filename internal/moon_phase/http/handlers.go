package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/render"
	"github.com/gin-gonic/gin"
)

// GetReport returns the moon report for ?date=YYYY-MM-DD (or ?at=RFC3339,
// or today) at ?lat=&lng=&tz=, falling back to the default observer.
func (h *Handler) GetReport(c *gin.Context) {
	obs, loc, err := h.observer(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var report *domain.Report

	switch {
	case c.Query("at") != "":
		at, perr := time.Parse(time.RFC3339, c.Query("at"))
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at must be RFC3339"})
			return
		}
		report, err = h.svc.Snapshot(ctx, at.In(loc), obs.Latitude, obs.Longitude)
	case c.Query("date") != "":
		day, perr := time.ParseInLocation("2006-01-02", c.Query("date"), loc)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		report, err = h.svc.Day(ctx, day.Year(), day.Month(), day.Day(), loc, obs.Latitude, obs.Longitude)
	default:
		report, err = h.svc.Today(ctx, loc, obs.Latitude, obs.Longitude)
	}

	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetCalendar returns one report per day for ?year=&month=.
func (h *Handler) GetCalendar(c *gin.Context) {
	obs, loc, err := h.observer(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().In(loc)
	year, err := intQuery(c, "year", now.Year())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	month, err := intQuery(c, "month", int(now.Month()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}

	days, err := h.svc.Calendar(c.Request.Context(), year, time.Month(month), loc, obs.Latitude, obs.Longitude)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "days": days})
}

// GetOutline returns the silhouette for ?phase= or for the phase of ?date=.
func (h *Handler) GetOutline(c *gin.Context) {
	phase, ok := h.phase(c)
	if !ok {
		return
	}

	o, err := h.svc.Outline(phase)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outline": newOutlineResponse(o)})
}

// RenderSVG draws the silhouette as a standalone SVG document.
func (h *Handler) RenderSVG(c *gin.Context) {
	phase, ok := h.phase(c)
	if !ok {
		return
	}

	o, err := h.svc.Outline(phase)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/svg+xml", render.SVG(o, h.svgOptions))
}

// phase resolves ?phase= directly, otherwise the phase of the requested day.
// It writes the error response itself and reports whether to continue.
func (h *Handler) phase(c *gin.Context) (float64, bool) {
	if raw := c.Query("phase"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phase must be a number"})
			return 0, false
		}
		return p, true
	}

	obs, loc, err := h.observer(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}

	var report *domain.Report
	if raw := c.Query("date"); raw != "" {
		day, perr := time.ParseInLocation("2006-01-02", raw, loc)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return 0, false
		}
		report, err = h.svc.Day(c.Request.Context(), day.Year(), day.Month(), day.Day(), loc, obs.Latitude, obs.Longitude)
	} else {
		report, err = h.svc.Today(c.Request.Context(), loc, obs.Latitude, obs.Longitude)
	}
	if err != nil {
		writeError(c, err)
		return 0, false
	}
	return report.Moon.Phase, true
}

// observer reads lat, lng and tz, defaulting each to the configured observer.
func (h *Handler) observer(c *gin.Context) (domain.Location, *time.Location, error) {
	obs := h.svc.DefaultObserver()

	if raw := strings.TrimSpace(c.Query("lat")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return obs, nil, domain.ErrInvalidLocation
		}
		obs.Latitude = v
	}
	if raw := strings.TrimSpace(c.Query("lng")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return obs, nil, domain.ErrInvalidLocation
		}
		obs.Longitude = v
	}
	if raw := strings.TrimSpace(c.Query("tz")); raw != "" {
		obs.Timezone = raw
	}

	loc, err := time.LoadLocation(obs.Timezone)
	if err != nil {
		return obs, nil, domain.ErrInvalidTimezone
	}
	return obs, loc, nil
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
	case errors.Is(err, domain.ErrInvalidLocation),
		errors.Is(err, domain.ErrInvalidTimezone),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidPhase):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute moon data"})
	}
}
