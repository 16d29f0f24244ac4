// Package config loads and validates the skypaper configuration document.
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"skypaper/internal/rules"
)

// Config is the immutable per-run configuration.
type Config struct {
	Longitude float64 `yaml:"longitude" validate:"required,longitude"`
	Latitude  float64 `yaml:"latitude" validate:"required,latitude"`

	// OpenWeatherMap enables weather-conditioned rules when present.
	OpenWeatherMap *OpenWeatherMap `yaml:"openweathermap"`

	Midnight       []rules.Entry `yaml:"midnight"`
	Morning        []rules.Entry `yaml:"morning"`
	EarlyAfternoon []rules.Entry `yaml:"early_afternoon"`
	LateAfternoon  []rules.Entry `yaml:"late_afternoon"`
	Evening        []rules.Entry `yaml:"evening"`
}

// OpenWeatherMap configures the optional weather provider.
type OpenWeatherMap struct {
	APIKey APIKeySource `yaml:"api_key"`
}

// APIKeySource reads the provider credential from a file or an environment
// variable.
type APIKeySource struct {
	Type string `yaml:"type"` // "file" or "env"
	Path string `yaml:"path"` // file variant
	Var  string `yaml:"var"`  // env variant
}

// apiKeyPattern is what OpenWeatherMap keys look like.
var apiKeyPattern = regexp.MustCompile(`\A\s*([0-9a-f]{32})\s*\z`)

// Read returns the raw API key. Callers must never log the result verbatim.
func (s APIKeySource) Read() (string, error) {
	switch s.Type {
	case "file":
		raw, err := os.ReadFile(s.Path)
		if err != nil {
			return "", fmt.Errorf("reading api key: %w", err)
		}
		m := apiKeyPattern.FindSubmatch(raw)
		if m == nil {
			return "", fmt.Errorf("%s: expected a 32-digit lowercase hex key", s.Path)
		}
		return string(m[1]), nil
	case "env":
		v := strings.TrimSpace(os.Getenv(s.Var))
		if v == "" {
			return "", fmt.Errorf("environment variable %s is empty or unset", s.Var)
		}
		return v, nil
	default:
		return "", fmt.Errorf("unknown api_key type %q, expected \"file\" or \"env\"", s.Type)
	}
}

var validate = validator.New()

// periodKeys are the rule table keys every document must carry, even when a
// period has no rules. An omitted key is a config mistake, not an empty list.
var periodKeys = []string{"midnight", "morning", "early_afternoon", "late_afternoon", "evening"}

// Load reads, decodes, and validates the config at path. Every pattern comes
// back with `~` expanded and its glob syntax checked, so resolution can
// treat patterns as trusted. Any error here aborts the run before solar or
// weather work starts.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := checkPeriodKeys(raw); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// checkPeriodKeys verifies the document names all five periods.
func checkPeriodKeys(raw []byte) error {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for _, key := range periodKeys {
		if _, ok := doc[key]; !ok {
			return fmt.Errorf("missing field %q", key)
		}
	}
	return nil
}

// isNormal mirrors IEEE 754 normality: no zero, subnormal, infinite, or NaN
// coordinates.
func isNormal(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && math.Abs(f) >= 0x1p-1022
}

func (c *Config) normalize() error {
	if !isNormal(c.Longitude) {
		return fmt.Errorf("longitude must be a normal number")
	}
	if !isNormal(c.Latitude) {
		return fmt.Errorf("latitude must be a normal number")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("home directory not found: %w", err)
	}

	if c.OpenWeatherMap != nil {
		src := &c.OpenWeatherMap.APIKey
		switch src.Type {
		case "file":
			p, err := expandUser(src.Path, home)
			if err != nil {
				return err
			}
			src.Path = p
		case "env":
			if src.Var == "" {
				return fmt.Errorf("api_key var must be set for type \"env\"")
			}
		default:
			return fmt.Errorf("unknown api_key type %q, expected \"file\" or \"env\"", src.Type)
		}
	}

	for _, entries := range [][]rules.Entry{
		c.Midnight, c.Morning, c.EarlyAfternoon, c.LateAfternoon, c.Evening,
	} {
		for i := range entries {
			for j, p := range entries[i].Patterns {
				expanded, err := expandUser(p, home)
				if err != nil {
					return err
				}
				if !doublestar.ValidatePattern(expanded) {
					return fmt.Errorf("invalid glob pattern %q", p)
				}
				entries[i].Patterns[j] = expanded
			}
		}
	}
	return nil
}

// Rules returns the rule table keyed by period.
func (c *Config) Rules() rules.Set {
	return rules.Set{
		Midnight:       c.Midnight,
		Morning:        c.Morning,
		EarlyAfternoon: c.EarlyAfternoon,
		LateAfternoon:  c.LateAfternoon,
		Evening:        c.Evening,
	}
}

// DefaultPath is where the config lives when --config is not given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve the user config directory: %w", err)
	}
	return filepath.Join(dir, "skypaper.yml"), nil
}
