package helpers

import (
	"fmt"
	"strconv"
)

// FormatClock renders a duration in seconds as m:ss or h:mm:ss for chat display.
// Zero or negative seconds render as "Live" (streams report no duration).
func FormatClock(seconds int) string {
	if seconds <= 0 {
		return "Live"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatCount renders a counter with thousands separators, or "N/A" when unknown.
func FormatCount(n int64) string {
	if n <= 0 {
		return "N/A"
	}
	raw := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(raw) {
		if i > 0 && (len(raw)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return string(out)
}
