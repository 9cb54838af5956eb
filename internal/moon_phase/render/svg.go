// Package render draws silhouette outlines as SVG.
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/silhouette"
)

// Options controls the standalone SVG document.
type Options struct {
	Background string
	Shadow     string
	Lit        string
	// TextureURL, when set, is drawn clipped to the lit region instead of a
	// flat Lit fill.
	TextureURL string
	// Margin is the empty space around the disc in canvas units.
	Margin float64
}

// DefaultOptions is a pale moon on a near-black sky.
var DefaultOptions = Options{
	Background: "#05070d",
	Shadow:     "#1b1e26",
	Lit:        "#f4f1e6",
	Margin:     4,
}

// SVGPath returns the outline as an SVG path "d" attribute using elliptical
// arc commands. An empty outline gives "".
func SVGPath(o silhouette.Outline) string {
	segs := o.Segments()
	if len(segs) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", num(segs[0].From.X), num(segs[0].From.Y))
	for _, s := range segs {
		fmt.Fprintf(&b, " A %s %s 0 0 %d %s %s",
			num(s.RX), num(s.RY), sweepFlag(s), num(s.To.X), num(s.To.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

// sweepFlag maps the bulge side to SVG's sweep flag. With y pointing down a
// positive sweep is clockwise on screen: north to south through the right,
// or south to north through the left.
func sweepFlag(s silhouette.Segment) int {
	down := s.To.Y > s.From.Y
	if down == (s.Bulge == silhouette.Right) {
		return 1
	}
	return 0
}

// SVG renders a complete document: background, the shadowed disc, and the
// lit region on top of it.
func SVG(o silhouette.Outline, opts Options) []byte {
	d := o.Disc
	m := opts.Margin
	size := 2*d.Radius + 2*m
	minX := d.Center.X - d.Radius - m
	minY := d.Center.Y - d.Radius - m

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`,
		num(minX), num(minY), num(size), num(size), num(size), num(size))
	b.WriteString("\n")

	path := SVGPath(o)
	if path != "" && opts.TextureURL != "" {
		fmt.Fprintf(&b, `<defs><clipPath id="lit"><path d="%s"/></clipPath></defs>`, path)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
		num(minX), num(minY), num(size), num(size), attr(opts.Background))
	b.WriteString("\n")
	fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
		num(d.Center.X), num(d.Center.Y), num(d.Radius), attr(opts.Shadow))
	b.WriteString("\n")

	if path != "" {
		if opts.TextureURL != "" {
			fmt.Fprintf(&b, `<image href="%s" x="%s" y="%s" width="%s" height="%s" clip-path="url(#lit)"/>`,
				attr(opts.TextureURL), num(d.Center.X-d.Radius), num(d.Center.Y-d.Radius),
				num(2*d.Radius), num(2*d.Radius))
		} else {
			fmt.Fprintf(&b, `<path d="%s" fill="%s"/>`, path, attr(opts.Lit))
		}
		b.WriteString("\n")
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func attr(s string) string {
	return html.EscapeString(s)
}
