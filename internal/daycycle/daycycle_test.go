package daycycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	at := func(h, min int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(min)*time.Minute)
	}
	m := Moments{
		Sunrise:  at(6, 0),
		Midday:   at(12, 0),
		Sunset:   at(18, 0),
		Midnight: at(24, 0),
	}

	tests := []struct {
		name string
		now  time.Time
		want Period
	}{
		{"morning", at(7, 0), Morning},
		{"sunrise boundary is morning", at(6, 0), Morning},
		{"just before sunrise", at(5, 59), Midnight},
		{"early afternoon", at(12, 30), EarlyAfternoon},
		{"midday boundary is early afternoon", at(12, 0), EarlyAfternoon},
		{"late afternoon", at(16, 45), LateAfternoon},
		{"sunset minus 90min starts late afternoon", at(16, 30), LateAfternoon},
		{"just before the cutoff", at(16, 29), EarlyAfternoon},
		{"evening", at(19, 0), Evening},
		{"sunset boundary is evening", at(18, 0), Evening},
		{"small hours", at(2, 0), Midnight},
		{"past the midnight boundary", at(24, 30), Midnight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.now, m))
		})
	}
}

func TestClassifyDisorderedMoments(t *testing.T) {
	// Zero-valued moments mimic polar pathologies where the provider cannot
	// report a sunrise. No range matches and nothing panics.
	now := time.Date(2026, time.June, 21, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, Midnight, Classify(now, Moments{}))
}

func TestClassifyInvertedMoments(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	m := Moments{
		Sunrise:  day.Add(18 * time.Hour),
		Midday:   day.Add(12 * time.Hour),
		Sunset:   day.Add(6 * time.Hour),
		Midnight: day,
	}
	// Sunrise after midday leaves the morning range empty.
	assert.Equal(t, Midnight, Classify(day.Add(19*time.Hour), m))
}

func TestPeriodString(t *testing.T) {
	assert.Equal(t, "morning", Morning.String())
	assert.Equal(t, "early afternoon", EarlyAfternoon.String())
	assert.Equal(t, "late afternoon", LateAfternoon.String())
	assert.Equal(t, "evening", Evening.String())
	assert.Equal(t, "midnight", Midnight.String())
}

func TestSunSourceEvents(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	day := time.Date(2026, time.June, 1, 0, 0, 0, 0, jst)

	m := SunSource{}.Events(day, 139.0, 35.0)

	require.True(t, m.Sunrise.Before(m.Midday), "sunrise %v must precede midday %v", m.Sunrise, m.Midday)
	require.True(t, m.Midday.Before(m.Sunset), "midday %v must precede sunset %v", m.Midday, m.Sunset)

	assert.True(t, m.Midnight.After(day), "midnight boundary must be after the day start")
	assert.LessOrEqual(t, m.Midnight.Sub(day), 25*time.Hour)

	// Tokyo sunrises well before 06:00 local in June.
	assert.Less(t, m.Sunrise.In(jst).Hour(), 6)
}

func TestSunSourceMidnightBoundaryWithoutEarlyRawMidnight(t *testing.T) {
	// Far west in a UTC day frame the solar midnight lands after the day
	// start, so the boundary snaps to the next civil midnight.
	day := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	m := SunSource{}.Events(day, -150.0, 61.0)

	if m.Midday.Add(-12 * time.Hour).Before(day) {
		t.Skip("raw solar midnight precedes the day start at this location")
	}
	assert.Equal(t, day.Add(24*time.Hour), m.Midnight)
}
