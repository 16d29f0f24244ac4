// Package app wires the per-run pipeline: solar moments, weather, period
// classification, rule resolution, selection, and the wallpaper call.
package app

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"skypaper/internal/config"
	"skypaper/internal/daycycle"
	"skypaper/internal/desktop"
	"skypaper/internal/rules"
	"skypaper/internal/weather"
)

// App holds the collaborators for a single run. Everything stateful (clock,
// RNG, provider, sink) is injected so runs are reproducible under test.
type App struct {
	Config  *config.Config
	Solar   daycycle.Source
	Weather weather.Source // nil when no provider is configured
	Sink    desktop.Sink
	Rand    *rand.Rand
	Now     func() time.Time
	DryRun  bool
	Out     io.Writer
	Log     *zap.Logger
}

// Run performs one selection pass and applies (or, on dry runs, prints) the
// result.
func (a *App) Run(ctx context.Context) error {
	now := a.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	m := a.Solar.Events(dayStart, a.Config.Longitude, a.Config.Latitude)
	a.Log.Info("sunrise  = " + m.Sunrise.In(now.Location()).Format(time.RFC3339))
	a.Log.Info("midday   = " + m.Midday.In(now.Location()).Format(time.RFC3339))
	a.Log.Info("sunset   = " + m.Sunset.In(now.Location()).Format(time.RFC3339))
	a.Log.Info("midnight = " + m.Midnight.In(now.Location()).Format(time.RFC3339))

	snap := a.currentWeather(ctx)

	period := daycycle.Classify(now, m)
	a.Log.Info("It is " + period.String())

	ruleset := a.Config.Rules()
	candidates := rules.NewResolver(a.Log).Resolve(ruleset.ForPeriod(period), snap)

	plural := ""
	if len(candidates) != 1 {
		plural = "s"
	}
	a.Log.Info(fmt.Sprintf("%d file%s matched", len(candidates), plural))

	choice, err := rules.Pick(a.Rand, candidates)
	if err != nil {
		return err
	}

	if a.DryRun {
		fmt.Fprintln(a.Out, choice)
		return nil
	}

	a.Log.Info("Setting " + choice)
	if err := a.Sink.Set(choice); err != nil {
		return err
	}
	a.Log.Info("Successfully set")
	return nil
}

// currentWeather fetches conditions when a provider is configured. A failed
// fetch is not fatal: it logs a warning and substitutes the clear-sky
// default so unconditional and Clear-matching rules still apply.
func (a *App) currentWeather(ctx context.Context) *weather.Snapshot {
	if a.Weather == nil {
		return nil
	}

	snap, err := a.Weather.Current(ctx, a.Config.Longitude, a.Config.Latitude)
	if err != nil {
		a.Log.Warn(err.Error())
		a.Log.Warn(`Using "clear sky" (id=800)`)
		return weather.Default()
	}

	a.Log.Info("Current weather:")
	for _, c := range snap.Conditions {
		a.Log.Info("- " + c.String())
	}
	return snap
}
