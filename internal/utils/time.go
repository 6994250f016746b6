package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/remindme/internal/constants"
)

// NowTimestamp returns the current UTC time in the store-assigned timestamp
// format.
func NowTimestamp() string {
	return time.Now().UTC().Format(constants.StampFormat)
}

// ParseTimestamp parses a stored RFC3339 timestamp, with or without
// fractional seconds.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(constants.TimestampFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}

// RelativeTime describes t relative to now in coarse human units, e.g.
// "in 2 hours" or "3 days ago". An exact match returns "now".
func RelativeTime(t, now time.Time) string {
	diff := t.Sub(now)
	past := diff < 0
	if past {
		diff = -diff
	}

	var amount string
	switch {
	case diff < time.Minute:
		if diff < 5*time.Second {
			return "now"
		}
		amount = fmt.Sprintf("%d seconds", int(diff.Seconds()))
	case diff < time.Hour:
		amount = plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		amount = plural(int(diff.Hours()), "hour")
	default:
		amount = plural(int(diff.Hours()/24), "day")
	}

	if past {
		return amount + " ago"
	}
	return "in " + amount
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
