package common

import "fmt"

// FormatPercent renders part/total as a percentage. A zero total counts as fully covered.
func FormatPercent(part, total int64) string {
	if total == 0 {
		return "100%"
	}
	return fmt.Sprintf("%.0f%%", float64(part)*100/float64(total))
}
