// ABOUTME: Number and duration formatting for progress lines and the report
// ABOUTME: Formats temperatures with just enough digits to show a change, plus rates and elapsed time

package main

import (
	"fmt"
	"math"
	"time"
)

// FormatMinimalPrecision returns a formatted string of curr with the minimum
// precision needed to distinguish it from prev. Annealing temperatures shrink
// geometrically, so a fixed precision soon prints every step as the same value.
func FormatMinimalPrecision(prev, curr float64) string {
	// Handle special cases
	if math.IsNaN(prev) || math.IsNaN(curr) {
		return fmt.Sprintf("%.2f", curr)
	}
	if math.IsInf(prev, 0) || math.IsInf(curr, 0) {
		return fmt.Sprintf("%.2f", curr)
	}

	if prev == curr {
		return fmt.Sprintf("%.2f", curr)
	}

	// Find the minimum precision where formatted strings differ
	const maxPrecision = 10
	for precision := 1; precision <= maxPrecision; precision++ {
		prevStr := fmt.Sprintf("%.*f", precision, prev)
		currStr := fmt.Sprintf("%.*f", precision, curr)

		if prevStr != currStr {
			// One more digit for clarity
			return fmt.Sprintf("%.*f", min(precision+1, maxPrecision), curr)
		}
	}

	return fmt.Sprintf("%.*f", maxPrecision, curr)
}

// formatElapsed formats a duration as "1m05s" or "42s", right-aligned to 6 characters
func formatElapsed(d time.Duration) string {
	var s string
	if d >= time.Minute {
		s = fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	} else {
		s = fmt.Sprintf("%ds", int(d.Seconds()))
	}

	return fmt.Sprintf("%6s", s)
}

// formatRate formats an iterations-per-second figure with a k/M suffix
func formatRate(perSecond float64) string {
	switch {
	case perSecond >= 1e6:
		return fmt.Sprintf("%.1fM/s", perSecond/1e6)
	case perSecond >= 1e3:
		return fmt.Sprintf("%.1fk/s", perSecond/1e3)
	default:
		return fmt.Sprintf("%.0f/s", perSecond)
	}
}
