package rules

import (
	"errors"
	"math/rand"
)

// ErrNoMatch reports that no file survived rule resolution. This is the
// pipeline's primary domain failure, distinct from any infrastructure error.
var ErrNoMatch = errors.New("no wallpapers matched the current conditions")

// Pick chooses uniformly at random among the candidates. Fairness, not
// security, is what matters here, so any seeded math/rand source will do.
func Pick(rng *rand.Rand, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoMatch
	}
	return candidates[rng.Intn(len(candidates))], nil
}
