// Package calc computes an approximate moon snapshot from a timestamp.
//
// The model is a mean synodic cycle anchored at a known new moon. It is good
// to within a day or so of the true phase, which is enough for display and
// for picking a silhouette. Rise, set and transit use a linear placeholder
// model and are not astronomical predictions.
package calc

import (
	"math"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
)

const (
	// SynodicMonth is the mean length of a lunation in days.
	SynodicMonth = 29.53058867

	// ReferenceNewMoonJD anchors the cycle at the new moon of 2000-01-06.
	ReferenceNewMoonJD = 2451550.1

	// MeanDistanceKm is reported as a constant distance approximation.
	MeanDistanceKm = 384400.0

	unixEpochJD   = 2440587.5
	secondsPerDay = 86400.0
)

// JulianDay converts t into a continuous day count. The offset of t's
// location is added so local calendar days map onto whole day boundaries.
func JulianDay(t time.Time) float64 {
	_, offset := t.Zone()
	ms := float64(t.UnixMilli())
	return ms/(secondsPerDay*1000) + unixEpochJD + float64(offset)/secondsPerDay
}

// NormalizePhase folds any finite value into [0,1) with a floor based modulo.
func NormalizePhase(p float64) float64 {
	f := p - math.Floor(p)
	// p slightly below an integer can round up to exactly 1.
	if f >= 1 {
		return 0
	}
	return f
}

// CosTurn returns cos(2π·p) with exact results on the quarter turns, where
// math.Cos leaves rounding residue around zero.
func CosTurn(p float64) float64 {
	switch p {
	case 0:
		return 1
	case 0.25, 0.75:
		return 0
	case 0.5:
		return -1
	}
	return math.Cos(2 * math.Pi * p)
}

// Illumination is the lit fraction of the visible disc under a cosine model.
func Illumination(phase float64) float64 {
	return 0.5 * (1 - CosTurn(NormalizePhase(phase)))
}

// ComputeMoonSnapshot returns the moon state for date as seen from (lat, lng).
// The position is accepted for API symmetry; the simplified model does not
// use it. Any finite input yields a result.
func ComputeMoonSnapshot(date time.Time, lat, lng float64) domain.MoonSnapshot {
	elapsed := JulianDay(date) - ReferenceNewMoonJD
	phase := NormalizePhase(elapsed / SynodicMonth)
	age := phase * SynodicMonth

	rise, set, transit := RiseSetTransit(date, age)

	return domain.MoonSnapshot{
		Phase:               phase,
		Age:                 age,
		IlluminatedFraction: Illumination(phase),
		PhaseName:           PhaseNameForAge(age),
		RiseTime:            &rise,
		SetTime:             &set,
		TransitTime:         &transit,
		DistanceKm:          MeanDistanceKm,
	}
}

// RiseSetTransit applies the linear placeholder model: the moon rises at
// 06:00 plus 0.8h per day of age and sets twelve hours later. Times are
// relative to local midnight of date and may spill into the next day.
func RiseSetTransit(date time.Time, age float64) (rise, set, transit time.Time) {
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, date.Location())

	rise = dayStart.Add(hours(6 + age*0.8))
	set = dayStart.Add(hours(18 + age*0.8))
	transit = rise.Add(set.Sub(rise) / 2)
	return rise, set, transit
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
