package core

import "github.com/dustin/go-humanize"

// FormatBytes renders n in binary units ("1.5 KiB", "200 MiB"). Negative
// sizes render as "0 B".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
