package generator

import (
	"math"
	"math/rand/v2"
	"time"
)

// uniform draws from [lo, hi).
func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// between draws an integer from [lo, hi] inclusive.
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func pick(r *rand.Rand, values []string) string {
	return values[r.IntN(len(values))]
}

// daysBefore keeps ref's time of day and steps back a whole number of days in [minDays, maxDays].
func daysBefore(r *rand.Rand, ref time.Time, minDays, maxDays int) time.Time {
	return ref.AddDate(0, 0, -between(r, minDays, maxDays))
}

// notBefore clamps t so it never precedes floor.
func notBefore(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
