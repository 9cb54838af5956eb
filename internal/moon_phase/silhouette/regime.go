package silhouette

// Side names a half of the disc relative to its vertical axis.
type Side int

const (
	Right Side = iota
	Left
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// sign is +1 for the right half and -1 for the left, in canvas x.
func (s Side) sign() float64 {
	if s == Left {
		return -1
	}
	return 1
}

// Regime is the geometric case a partial outline falls into.
type Regime int

const (
	RegimeNone Regime = iota
	WaxingCrescent
	WaxingGibbous
	WaningGibbous
	WaningCrescent
)

func (r Regime) String() string {
	switch r {
	case WaxingCrescent:
		return "waxing_crescent"
	case WaxingGibbous:
		return "waxing_gibbous"
	case WaningGibbous:
		return "waning_gibbous"
	case WaningCrescent:
		return "waning_crescent"
	default:
		return "none"
	}
}

func (r Regime) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// OuterSide is the lit hemisphere: right while waxing, left while waning.
func (r Regime) OuterSide() Side {
	switch r {
	case WaningGibbous, WaningCrescent:
		return Left
	default:
		return Right
	}
}

// TerminatorBulge is the side the terminator ellipse passes through.
// Bulging into the lit hemisphere makes a crescent; bulging into the dark
// one makes a gibbous.
func (r Regime) TerminatorBulge() Side {
	switch r {
	case WaxingCrescent, WaningGibbous:
		return Right
	default:
		return Left
	}
}

// Crescent reports whether the lit area is smaller than a half disc.
func (r Regime) Crescent() bool {
	return r == WaxingCrescent || r == WaningCrescent
}

// regimeFor picks the regime from the quarter of the cycle phase falls in.
// phase must already be normalised.
func regimeFor(phase float64) Regime {
	switch {
	case phase < 0.25:
		return WaxingCrescent
	case phase < 0.5:
		return WaxingGibbous
	case phase < 0.75:
		return WaningGibbous
	default:
		return WaningCrescent
	}
}
