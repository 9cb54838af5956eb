// Package silhouette turns a phase fraction into the outline of the lit part
// of the lunar disc.
//
// A partial outline is always two arcs joining the north and south poles:
// half of the disc boundary on the lit side, then the terminator, a half
// ellipse whose horizontal semi-axis is R·|cos(2π·phase)|. New and full moon
// are resolved by guard clauses so the renderer never sees a zero-width or
// self-overlapping path.
package silhouette

import (
	"math"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/calc"
)

// Epsilon is the half-width of the new moon and full moon bands, about seven
// hours of a lunation. It hides sub-pixel slivers, nothing more.
const Epsilon = 0.01

// Kind classifies an outline.
type Kind int

const (
	Empty Kind = iota
	Full
	Partial
)

func (k Kind) String() string {
	switch k {
	case Full:
		return "full"
	case Partial:
		return "partial"
	default:
		return "empty"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Disc is the moon's drawing area. Canvas y grows downwards.
type Disc struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// DefaultDisc fills a 200x200 canvas.
var DefaultDisc = Disc{Center: Point{X: 100, Y: 100}, Radius: 100}

func (d Disc) north() Point { return Point{X: d.Center.X, Y: d.Center.Y - d.Radius} }
func (d Disc) south() Point { return Point{X: d.Center.X, Y: d.Center.Y + d.Radius} }

// Segment is a half-ellipse arc between two poles of the disc. RY is always
// the disc radius; RX is the horizontal semi-axis and may be zero, in which
// case the arc is the straight pole-to-pole chord.
type Segment struct {
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	RX    float64 `json:"rx"`
	RY    float64 `json:"ry"`
	Bulge Side    `json:"bulge"`
}

// Outline is the lit region of the disc for one phase.
type Outline struct {
	Disc         Disc    `json:"disc"`
	Phase        float64 `json:"phase"`
	Kind         Kind    `json:"kind"`
	Regime       Regime  `json:"regime"`
	TerminatorRX float64 `json:"terminator_rx"`
}

// ComputeIlluminatedOutline returns the outline on DefaultDisc.
func ComputeIlluminatedOutline(phase float64) Outline {
	return DefaultDisc.Outline(phase)
}

// Outline returns the lit outline for phase on d. phase is normalised into
// [0,1) first, so any finite value is accepted.
func (d Disc) Outline(phase float64) Outline {
	p := calc.NormalizePhase(phase)
	o := Outline{Disc: d, Phase: p}

	if p < Epsilon || p > 1-Epsilon {
		o.Kind = Empty
		return o
	}
	if math.Abs(p-0.5) < Epsilon {
		o.Kind = Full
		return o
	}

	o.Kind = Partial
	o.Regime = regimeFor(p)
	o.TerminatorRX = d.Radius * math.Abs(calc.CosTurn(p))
	return o
}

// Segments returns the closed path as arcs, starting at the north pole.
// An empty outline has no segments; a full one is two semicircles.
func (o Outline) Segments() []Segment {
	d := o.Disc
	r := d.Radius
	switch o.Kind {
	case Full:
		return []Segment{
			{From: d.north(), To: d.south(), RX: r, RY: r, Bulge: Right},
			{From: d.south(), To: d.north(), RX: r, RY: r, Bulge: Left},
		}
	case Partial:
		return []Segment{
			{From: d.north(), To: d.south(), RX: r, RY: r, Bulge: o.Regime.OuterSide()},
			{From: d.south(), To: d.north(), RX: o.TerminatorRX, RY: r, Bulge: o.Regime.TerminatorBulge()},
		}
	default:
		return nil
	}
}

// Area is the enclosed area in canvas units: a half disc minus (crescent) or
// plus (gibbous) half of the terminator ellipse.
func (o Outline) Area() float64 {
	r := o.Disc.Radius
	switch o.Kind {
	case Full:
		return math.Pi * r * r
	case Partial:
		half := math.Pi * r * r / 2
		lens := math.Pi * o.TerminatorRX * r / 2
		if o.Regime.Crescent() {
			return half - lens
		}
		return half + lens
	default:
		return 0
	}
}

// LitFraction is Area over the disc area.
func (o Outline) LitFraction() float64 {
	r := o.Disc.Radius
	if r == 0 {
		return 0
	}
	return o.Area() / (math.Pi * r * r)
}

// Polygon samples the outline into a closed ring with steps points per arc,
// for consumers that cannot draw elliptical arcs. The first point is not
// repeated at the end.
func (o Outline) Polygon(steps int) []Point {
	segs := o.Segments()
	if len(segs) == 0 {
		return nil
	}
	if steps < 2 {
		steps = 2
	}

	out := make([]Point, 0, steps*len(segs))
	for _, s := range segs {
		// Skip the end point; the next segment starts there.
		for i := 0; i < steps; i++ {
			out = append(out, s.at(float64(i)/float64(steps)))
		}
	}
	return out
}

// at returns the point a fraction t along the arc. The arc is parametrised
// from -π/2 (north) to π/2 (south) and run backwards when it starts south.
func (s Segment) at(t float64) Point {
	cx := s.From.X
	cy := (s.From.Y + s.To.Y) / 2

	theta := -math.Pi/2 + t*math.Pi
	if s.From.Y > s.To.Y {
		theta = -theta
	}
	return Point{
		X: cx + s.Bulge.sign()*s.RX*math.Cos(theta),
		Y: cy + s.RY*math.Sin(theta),
	}
}
