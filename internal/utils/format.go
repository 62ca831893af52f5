package utils

import "fmt"

// FormatMbps renders a speed the way it appears everywhere in the UI and in
// exports: two decimal digits.
func FormatMbps(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatLatency renders a millisecond latency for the status line.
func FormatLatency(ms float64) string {
	if ms <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f ms", ms)
}
