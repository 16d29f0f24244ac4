// Package weather models current conditions as reported by OpenWeatherMap
// and the filters a wallpaper rule may declare against them.
package weather

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the coarse condition group from OpenWeatherMap's "main" field.
// https://openweathermap.org/weather-conditions
type Category string

const (
	Thunderstorm Category = "Thunderstorm"
	Drizzle      Category = "Drizzle"
	Rain         Category = "Rain"
	Snow         Category = "Snow"
	Mist         Category = "Mist"
	Smoke        Category = "Smoke"
	Haze         Category = "Haze"
	Dust         Category = "Dust"
	Fog          Category = "Fog"
	Sand         Category = "Sand"
	Ash          Category = "Ash"
	Squall       Category = "Squall"
	Tornado      Category = "Tornado"
	Clear        Category = "Clear"
	Clouds       Category = "Clouds"
)

var categories = []Category{
	Thunderstorm, Drizzle, Rain, Snow, Mist, Smoke, Haze, Dust,
	Fog, Sand, Ash, Squall, Tornado, Clear, Clouds,
}

// ParseCategory maps a string onto a known Category. The error enumerates
// the valid values so a config typo is easy to fix.
func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q, expected one of %s", s, categoryList())
}

func categoryList() string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Condition is a single weather condition record. Providers may report
// several at once, e.g. rain and mist.
type Condition struct {
	ID          int64
	Main        Category
	Description string
}

func (c Condition) String() string {
	return fmt.Sprintf("%s (id=%d)", c.Description, c.ID)
}

// Snapshot holds the conditions observed at the time of the run.
type Snapshot struct {
	Conditions []Condition
}

// Matches reports whether any condition in the snapshot satisfies any of
// the filters.
func (s *Snapshot) Matches(filters []Filter) bool {
	for _, c := range s.Conditions {
		for _, f := range filters {
			if f.Matches(c) {
				return true
			}
		}
	}
	return false
}

// Default is the synthetic clear-sky snapshot substituted when the provider
// call fails. It is a real value, distinct from having no snapshot at all.
func Default() *Snapshot {
	return &Snapshot{Conditions: []Condition{{
		ID:          800,
		Main:        Clear,
		Description: "clear sky (skypaper default)",
	}}}
}

type filterKind int

const (
	filterByID filterKind = iota
	filterByCategory
)

// Filter matches a condition either by numeric id or by category.
type Filter struct {
	kind filterKind
	id   int64
	main Category
}

// FilterID builds a filter matching a condition id (e.g. 800 for clear sky).
func FilterID(id int64) Filter {
	return Filter{kind: filterByID, id: id}
}

// FilterCategory builds a filter matching a condition category.
func FilterCategory(c Category) Filter {
	return Filter{kind: filterByCategory, main: c}
}

// Matches reports whether the filter accepts the condition.
func (f Filter) Matches(c Condition) bool {
	if f.kind == filterByID {
		return c.ID == f.id
	}
	return c.Main == f.main
}

func (f Filter) String() string {
	if f.kind == filterByID {
		return fmt.Sprintf("id=%d", f.id)
	}
	return string(f.main)
}

// UnmarshalYAML decodes a non-negative integer scalar as an id filter and a
// string scalar as a category filter. Anything else is rejected.
func (f *Filter) UnmarshalYAML(node *yaml.Node) error {
	switch node.Tag {
	case "!!int":
		var id int64
		if err := node.Decode(&id); err != nil {
			return err
		}
		if id < 0 {
			return fmt.Errorf("line %d: condition id must not be negative, got %d", node.Line, id)
		}
		*f = FilterID(id)
		return nil
	case "!!str":
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		c, err := ParseCategory(s)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*f = FilterCategory(c)
		return nil
	default:
		return fmt.Errorf("line %d: expected an integer id or a category string", node.Line)
	}
}
