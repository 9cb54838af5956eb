package domain

import "time"

// PhaseName is one of the eight named lunar phases.
type PhaseName string

const (
	NewMoon        PhaseName = "NEW_MOON"
	WaxingCrescent PhaseName = "WAXING_CRESCENT"
	FirstQuarter   PhaseName = "FIRST_QUARTER"
	WaxingGibbous  PhaseName = "WAXING_GIBBOUS"
	FullMoon       PhaseName = "FULL_MOON"
	WaningGibbous  PhaseName = "WANING_GIBBOUS"
	LastQuarter    PhaseName = "LAST_QUARTER"
	WaningCrescent PhaseName = "WANING_CRESCENT"
)

// Label returns a human readable name for display.
func (p PhaseName) Label() string {
	switch p {
	case NewMoon:
		return "New Moon"
	case WaxingCrescent:
		return "Waxing Crescent"
	case FirstQuarter:
		return "First Quarter"
	case WaxingGibbous:
		return "Waxing Gibbous"
	case FullMoon:
		return "Full Moon"
	case WaningGibbous:
		return "Waning Gibbous"
	case LastQuarter:
		return "Last Quarter"
	case WaningCrescent:
		return "Waning Crescent"
	default:
		return "Unknown"
	}
}

// MoonSnapshot is the computed state of the moon for one date and observer.
// It is a plain value; nothing mutates it after construction.
type MoonSnapshot struct {
	Phase               float64    `json:"phase"`
	Age                 float64    `json:"age_days"`
	IlluminatedFraction float64    `json:"illuminated_fraction"`
	PhaseName           PhaseName  `json:"phase_name"`
	RiseTime            *time.Time `json:"rise_time,omitempty"`
	SetTime             *time.Time `json:"set_time,omitempty"`
	TransitTime         *time.Time `json:"transit_time,omitempty"`
	DistanceKm          float64    `json:"distance_km"`
}

// Location is an observer position in degrees.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Timezone  string  `json:"tz,omitempty"`
}

// SunTimes holds sunrise and sunset for the observer's calendar day.
// Both are nil during polar day or polar night.
type SunTimes struct {
	Sunrise *time.Time `json:"sunrise,omitempty"`
	Sunset  *time.Time `json:"sunset,omitempty"`
}

// Report is what the API returns for a (date, location) query.
type Report struct {
	Date      string       `json:"date"`
	Location  Location     `json:"location"`
	Moon      MoonSnapshot `json:"moon"`
	PhaseText string       `json:"phase_label"`
	Sun       SunTimes     `json:"sun"`
}
