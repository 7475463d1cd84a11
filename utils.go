package raychel

import (
	"fmt"
	"math"
)

// Humanize formats a count with a K/M/G suffix, used by the CLI to print
// render progress (rays traced, samples accumulated) without a wall of
// digits.
func Humanize[T int | int32 | int64 | float64 | float32](val T) string {
	if val >= 1e9 {
		return fmt.Sprintf("%.1fG", float64(val)/1e9)
	}
	if val >= 1e6 {
		return fmt.Sprintf("%.1fM", float64(val)/1e6)
	}
	if val >= 1e3 {
		return fmt.Sprintf("%.1fK", float64(val)/1e3)
	}
	return fmt.Sprintf("%.1f", float64(val))
}

// Between reports whether l <= val <= r.
func Between(val, l, r float64) bool {
	return l <= val && r >= val
}

// Clamp01 clamps val to [0, 1].
func Clamp01(val float64) float64 {
	return math.Max(0, math.Min(1, val))
}
