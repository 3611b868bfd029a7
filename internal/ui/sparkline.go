package ui

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders values as a row of block characters, width cells wide.
// Values are averaged into width buckets and scaled between their min and max.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if width > len(values) {
		width = len(values)
	}

	buckets := make([]float64, width)
	for b := range buckets {
		start := b * len(values) / width
		end := (b + 1) * len(values) / width
		buckets[b] = floats.Sum(values[start:end]) / float64(end-start)
	}

	lo, hi := floats.Min(buckets), floats.Max(buckets)
	top := len(sparkBlocks) - 1

	var sb strings.Builder
	for _, v := range buckets {
		level := 0
		if hi > lo {
			level = int((v - lo) / (hi - lo) * float64(top))
		}
		sb.WriteRune(sparkBlocks[level])
	}
	return sb.String()
}

// coverage renders filled out of total as a bar of width cells
func coverage(filled, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	n := filled * width / total
	if n > width {
		n = width
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}
