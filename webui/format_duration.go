package webui

import (
	"fmt"
	"time"
)

// FormatDuration renders d with at most two units, e.g. "45s", "2m 30s",
// "2h 34m", "3d 5h". Sub-second durations render as "0s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDuration(-d)
	}

	const day = 24 * time.Hour
	units := []struct {
		size   time.Duration
		suffix string
	}{
		{day, "d"},
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
	}

	for i, u := range units[:len(units)-1] {
		if d >= u.size {
			next := units[i+1]
			major := d / u.size
			minor := (d % u.size) / next.size
			return fmt.Sprintf("%d%s %d%s", major, u.suffix, minor, next.suffix)
		}
	}
	return fmt.Sprintf("%ds", d/time.Second)
}
