package career

import "math"

// ConfidenceLevel grades how much data backs an aggregate.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "Low"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceHigh   ConfidenceLevel = "High"
)

const (
	lowConfidenceBelow    = 3
	mediumConfidenceBelow = 5
)

// ConfidenceFor returns the tier for n answered questions.
func ConfidenceFor(n int) ConfidenceLevel {
	switch {
	case n < lowConfidenceBelow:
		return ConfidenceLow
	case n < mediumConfidenceBelow:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

// discount holds the multipliers applied at the Low, Medium and High tiers.
type discount struct {
	low, medium, high float64
}

var (
	scoreDiscount         = discount{low: 0.70, medium: 0.85, high: 1.00}
	skillDiscount         = discount{low: 0.75, medium: 0.90, high: 1.00}
	compatibilityDiscount = discount{low: 0.80, medium: 0.90, high: 1.00}
)

func (d discount) factor(n int) float64 {
	switch ConfidenceFor(n) {
	case ConfidenceLow:
		return d.low
	case ConfidenceMedium:
		return d.medium
	default:
		return d.high
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
