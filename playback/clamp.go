package playback

import (
	"math"

	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
)

// Clamp bounds v to [lower, upper]. NaN becomes lower.
func Clamp[T constraints.Float](v, lower, upper T) T {
	if math.IsNaN(float64(v)) {
		return lower
	}
	return lo.Clamp(v, lower, upper)
}

func clampUnit(v float64) float64 {
	return Clamp(v, 0, 1)
}
