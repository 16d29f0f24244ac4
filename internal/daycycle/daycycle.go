// Package daycycle splits the local day into named periods anchored to the
// sun's movement at a fixed location.
package daycycle

import "time"

// Period is a segment of the local day.
type Period int

const (
	Midnight Period = iota
	Morning
	EarlyAfternoon
	LateAfternoon
	Evening
)

func (p Period) String() string {
	switch p {
	case Morning:
		return "morning"
	case EarlyAfternoon:
		return "early afternoon"
	case LateAfternoon:
		return "late afternoon"
	case Evening:
		return "evening"
	default:
		return "midnight"
	}
}

// Moments are the four solar instants dividing the day. Midnight is the
// end-of-day boundary.
type Moments struct {
	Sunrise  time.Time
	Midday   time.Time
	Sunset   time.Time
	Midnight time.Time
}

// LateAfternoonLead is how long before sunset the late afternoon begins.
// A fixed design constant, not an astronomical quantity.
const LateAfternoonLead = 90 * time.Minute

// Classify maps an instant to its period. The ranges are evaluated
// literally and in order: when the moments are out of order (polar
// latitudes, provider edge cases) no range may match and the result falls
// through to Midnight instead of erroring.
func Classify(now time.Time, m Moments) Period {
	switch {
	case !now.Before(m.Sunrise) && now.Before(m.Midday):
		return Morning
	case !now.Before(m.Midday) && now.Before(m.Sunset.Add(-LateAfternoonLead)):
		return EarlyAfternoon
	case !now.Before(m.Midday) && now.Before(m.Sunset):
		return LateAfternoon
	case !now.Before(m.Sunset) && now.Before(m.Midnight):
		return Evening
	default:
		return Midnight
	}
}
