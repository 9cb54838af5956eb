package render

import (
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/silhouette"
	"github.com/stretchr/testify/assert"
)

func TestSVGPath_Empty(t *testing.T) {
	assert.Equal(t, "", SVGPath(silhouette.ComputeIlluminatedOutline(0)))
	assert.Equal(t, "", SVGPath(silhouette.ComputeIlluminatedOutline(0.995)))
}

func TestSVGPath_Full(t *testing.T) {
	got := SVGPath(silhouette.ComputeIlluminatedOutline(0.5))
	assert.Equal(t, "M 100 0 A 100 100 0 0 1 100 200 A 100 100 0 0 1 100 0 Z", got)
}

func TestSVGPath_QuarterIsStraightTerminator(t *testing.T) {
	got := SVGPath(silhouette.ComputeIlluminatedOutline(0.25))
	assert.Equal(t, "M 100 0 A 100 100 0 0 1 100 200 A 0 100 0 0 1 100 0 Z", got)
}

func TestSVGPath_SweepFlagsPerRegime(t *testing.T) {
	cases := []struct {
		phase float64
		outer string
		term  string
	}{
		{0.125, "0 0 1 100 200", "0 0 0 100 0"},
		{0.375, "0 0 1 100 200", "0 0 1 100 0"},
		{0.625, "0 0 0 100 200", "0 0 0 100 0"},
		{0.875, "0 0 0 100 200", "0 0 1 100 0"},
	}
	for _, tc := range cases {
		got := SVGPath(silhouette.ComputeIlluminatedOutline(tc.phase))
		assert.Equal(t, 2, strings.Count(got, " A "), got)
		assert.Contains(t, got, tc.outer, "phase %v", tc.phase)
		assert.Contains(t, got, tc.term, "phase %v", tc.phase)
	}
}

func TestSVG_Document(t *testing.T) {
	doc := string(SVG(silhouette.ComputeIlluminatedOutline(0.3), DefaultOptions))

	assert.True(t, strings.HasPrefix(doc, "<svg "))
	assert.Contains(t, doc, `viewBox="-4 -4 208 208"`)
	assert.Contains(t, doc, `<circle cx="100" cy="100" r="100" fill="#1b1e26"/>`)
	assert.Contains(t, doc, `fill="#f4f1e6"`)
	assert.NotContains(t, doc, "clipPath")
}

func TestSVG_NewMoonHasNoLitPath(t *testing.T) {
	doc := string(SVG(silhouette.ComputeIlluminatedOutline(0.001), DefaultOptions))
	assert.NotContains(t, doc, "<path")
	assert.Contains(t, doc, "<circle")
}

func TestSVG_TextureIsClipped(t *testing.T) {
	opts := DefaultOptions
	opts.TextureURL = `/static/moon.jpg?a=1&b="2"`
	doc := string(SVG(silhouette.ComputeIlluminatedOutline(0.7), opts))

	assert.Contains(t, doc, `<clipPath id="lit">`)
	assert.Contains(t, doc, `clip-path="url(#lit)"`)
	assert.Contains(t, doc, `href="/static/moon.jpg?a=1&amp;b=&#34;2&#34;"`)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "100", num(100))
	assert.Equal(t, "70.711", num(70.71067811865476))
	assert.Equal(t, "0", num(-0.0001))
	assert.Equal(t, "-4", num(-4))
}
