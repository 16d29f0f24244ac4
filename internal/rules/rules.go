// Package rules holds the wallpaper rule table and turns the active period
// plus current weather into a pool of candidate files.
package rules

import (
	"skypaper/internal/daycycle"
	"skypaper/internal/weather"
)

// Entry pairs an optional weather filter with the glob patterns it unlocks.
// An entry whose `on` key is absent matches unconditionally; a present but
// empty filter list matches nothing (nil and empty are distinct). Patterns
// arrive with `~` already expanded and their glob syntax validated (config
// load guarantees both).
type Entry struct {
	On       []weather.Filter `yaml:"on"`
	Patterns []string         `yaml:"patterns"`
}

// Set is the full rule table, one ordered entry list per period.
type Set struct {
	Midnight       []Entry
	Morning        []Entry
	EarlyAfternoon []Entry
	LateAfternoon  []Entry
	Evening        []Entry
}

// ForPeriod returns the entry list bound to p.
func (s *Set) ForPeriod(p daycycle.Period) []Entry {
	switch p {
	case daycycle.Morning:
		return s.Morning
	case daycycle.EarlyAfternoon:
		return s.EarlyAfternoon
	case daycycle.LateAfternoon:
		return s.LateAfternoon
	case daycycle.Evening:
		return s.Evening
	default:
		return s.Midnight
	}
}
