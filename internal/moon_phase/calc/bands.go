package calc

import (
	"math"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
)

// Band is a half-open age interval [Lower, Upper) bound to a phase name.
type Band struct {
	Lower float64
	Upper float64
	Name  domain.PhaseName
}

// The upper bounds are fixed literals shared with existing clients; they are
// not derived from SynodicMonth.
var bands = [...]Band{
	{0, 1.84566, domain.NewMoon},
	{1.84566, 5.53699, domain.WaxingCrescent},
	{5.53699, 9.22831, domain.FirstQuarter},
	{9.22831, 12.91963, domain.WaxingGibbous},
	{12.91963, 16.61096, domain.FullMoon},
	{16.61096, 20.30228, domain.WaningGibbous},
	{20.30228, 23.99361, domain.LastQuarter},
	{23.99361, 27.68493, domain.WaningCrescent},
	{27.68493, SynodicMonth, domain.NewMoon},
}

// Bands returns a copy of the ordered band table.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands[:])
	return out
}

// PhaseNameForAge maps an age in days to its named phase. Ages outside one
// lunation are folded back into [0, SynodicMonth) first.
func PhaseNameForAge(age float64) domain.PhaseName {
	if age < 0 || age >= SynodicMonth {
		age = math.Mod(age, SynodicMonth)
		if age < 0 {
			age += SynodicMonth
		}
	}
	for _, b := range bands {
		if age < b.Upper {
			return b.Name
		}
	}
	return domain.NewMoon
}
