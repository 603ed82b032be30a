package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Count renders an integer count as a compact display string: values at or
// above one million are abbreviated with "M", at or above one thousand with
// "K", one decimal place with a trailing ".0" stripped. Values below one
// thousand are rendered as plain integers. The sign is preserved, so a
// negative delta formats as e.g. "-3.4K".
func Count(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000:
		return trimZero(float64(n)/1_000_000) + "M"
	case abs >= 1_000:
		return trimZero(float64(n)/1_000) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

// Delta renders a growth delta like Count but with an explicit "+" on
// positive values, matching how growth figures are displayed.
func Delta(n int64) string {
	s := Count(n)
	if n > 0 {
		return "+" + s
	}
	return s
}

// trimZero formats with one decimal place and strips a trailing ".0",
// so 1.0 becomes "1" and 1.5 stays "1.5".
func trimZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
