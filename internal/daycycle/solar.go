package daycycle

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Source computes the solar moments for the civil day starting at dayStart.
// dayStart must be midnight in the observer's local zone so the moments line
// up with the observer's calendar day.
type Source interface {
	Events(dayStart time.Time, lon, lat float64) Moments
}

// SunSource derives the moments from sunrise/sunset math.
type SunSource struct{}

// Events computes sunrise and sunset for dayStart's calendar date and takes
// apparent solar noon as their midpoint. The closing midnight boundary is
// the raw solar midnight (noon minus 12h) advanced by one day when it falls
// before the day start, otherwise the next civil midnight.
//
// At extreme latitudes go-sunrise reports zero times; the resulting moments
// are disordered and Classify degrades to Midnight.
func (SunSource) Events(dayStart time.Time, lon, lat float64) Moments {
	year, month, day := dayStart.Date()
	rise, set := sunrise.SunriseSunset(lat, lon, year, month, day)

	midday := rise.Add(set.Sub(rise) / 2)

	raw := midday.Add(-12 * time.Hour)
	boundary := dayStart.Add(24 * time.Hour)
	if raw.Before(dayStart) {
		boundary = raw.Add(24 * time.Hour)
	}

	return Moments{
		Sunrise:  rise,
		Midday:   midday,
		Sunset:   set,
		Midnight: boundary,
	}
}
