package rules

import (
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"skypaper/internal/weather"
)

// Resolver expands the entries that match the current weather into the pool
// of candidate files.
type Resolver struct {
	log *zap.Logger
}

func NewResolver(log *zap.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve follows the aggregate-all policy: every entry whose filter matches
// the snapshot, or that has no filter, contributes all of its patterns to a
// single shared pool. "No filter" means the `on` key was absent; a filtered
// entry never matches without a snapshot, and an empty filter list matches
// nothing at all. Patterns that match nothing contribute nothing; matches
// that are not regular files are logged and skipped.
func (r *Resolver) Resolve(entries []Entry, snap *weather.Snapshot) []string {
	var candidates []string
	for _, e := range entries {
		if e.On != nil {
			if snap == nil || !snap.Matches(e.On) {
				continue
			}
		}
		for _, pattern := range e.Patterns {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				// Patterns are validated at load, so this is filesystem trouble.
				r.log.Warn("glob failed", zap.String("pattern", pattern), zap.Error(err))
				continue
			}
			for _, m := range matches {
				info, err := os.Stat(m)
				if err != nil {
					r.log.Warn("ignoring "+m, zap.Error(err))
					continue
				}
				if !info.Mode().IsRegular() {
					r.log.Warn("ignoring " + m)
					continue
				}
				candidates = append(candidates, m)
			}
		}
	}
	return candidates
}
