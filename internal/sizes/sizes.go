// Package sizes formats byte counts for human display.
package sizes

import "fmt"

var units = []string{"B", "KB", "MB", "GB", "TB"}

// Human renders n scaled by 1024 through B/KB/MB/GB/TB with one decimal
// place, stopping at TB. Zero renders as "0 B".
func Human(n int64) string {
	if n == 0 {
		return "0 B"
	}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", v, units[i])
}
