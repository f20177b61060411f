package algo

import (
	"fmt"

	"github.com/huangsam/moodmixer/core/mood"
	"github.com/huangsam/moodmixer/schema"
)

// StatusText summarizes the current mood for display above the results.
func StatusText(dims []schema.Dimension, values map[schema.Dimension]int) string {
	avg := mood.Average(dims, values)
	dom, domValue := mood.Dominant(dims, values)
	switch {
	case domValue >= strongMood:
		return fmt.Sprintf("Dominant: %s (%d/10) - %.1f avg intensity", dom, domValue, avg)
	case avg > 6:
		return fmt.Sprintf("High energy mood (%.1f/10 avg) - Perfect for party drinks!", avg)
	case avg < 4:
		return fmt.Sprintf("Relaxed mood (%.1f/10 avg) - Great for chill drinks", avg)
	default:
		return fmt.Sprintf("Balanced mood (%.1f/10 avg) - Mix of recommendations", avg)
	}
}

// CountText renders a recommendation count.
func CountText(n int) string {
	if n == 1 {
		return "1 recommendation"
	}
	return fmt.Sprintf("%d recommendations", n)
}
