package domain

import "fmt"

// FormatAmount renders large coin amounts with a K/M/B suffix for log
// lines. Values below a thousand print as-is.
func FormatAmount(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%g", v)
	}
}
