package http

import (
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/render"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/service"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/silhouette"
)

// Handler handles HTTP requests for moon phase data
type Handler struct {
	svc        *service.PhaseService
	svgOptions render.Options
}

// New creates a new Handler. textureURL is optional.
func New(svc *service.PhaseService, textureURL string) *Handler {
	opts := render.DefaultOptions
	opts.TextureURL = textureURL
	return &Handler{svc: svc, svgOptions: opts}
}

// outlineResponse is the JSON form of a silhouette.
type outlineResponse struct {
	silhouette.Outline
	Segments    []silhouette.Segment `json:"segments"`
	Area        float64              `json:"area"`
	LitFraction float64              `json:"lit_fraction"`
	SVGPath     string               `json:"svg_path"`
}

func newOutlineResponse(o silhouette.Outline) outlineResponse {
	segs := o.Segments()
	if segs == nil {
		segs = []silhouette.Segment{}
	}
	return outlineResponse{
		Outline:     o,
		Segments:    segs,
		Area:        o.Area(),
		LitFraction: o.LitFraction(),
		SVGPath:     render.SVGPath(o),
	}
}
