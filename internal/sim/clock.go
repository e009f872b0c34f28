package sim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/avoronov/forumsim/internal/domain"
)

// Advance returns base shifted forward by hourShift hours, a uniformly random
// whole-minute offset in [minMinutes, maxMinutes] and a uniformly random
// second in [0, 59], clamped to 23:59:59 of base's calendar day. The result
// never crosses into the next day.
//
// A minute range with minMinutes > maxMinutes is a configuration error.
func Advance(rng *rand.Rand, base time.Time, hourShift, minMinutes, maxMinutes int) (time.Time, error) {
	if minMinutes > maxMinutes {
		return time.Time{}, fmt.Errorf("clock: %w",
			domain.NewValidationError("minutes", fmt.Sprintf("range %d..%d inverted", minMinutes, maxMinutes)))
	}

	minutes := minMinutes + rng.IntN(maxMinutes-minMinutes+1)
	seconds := rng.IntN(60)

	shifted := base.Add(
		time.Duration(hourShift)*time.Hour +
			time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second,
	)

	return clampToDay(shifted, base), nil
}

// EndOfDay returns 23:59:59 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// clampToDay caps t at the end of day's calendar day.
func clampToDay(t, day time.Time) time.Time {
	if end := EndOfDay(day); t.After(end) {
		return end
	}
	return t
}
