package utils

import (
	"testing"
	"time"
)

func TestNowTimestampRoundTrips(t *testing.T) {
	stamp := NowTimestamp()
	if _, err := ParseTimestamp(stamp); err != nil {
		t.Errorf("NowTimestamp produced an unparseable value %q: %v", stamp, err)
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Run("plain RFC3339", func(t *testing.T) {
		got, err := ParseTimestamp("2030-01-02T09:00:00Z")
		if err != nil {
			t.Fatalf("ParseTimestamp failed: %v", err)
		}
		want := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("fractional seconds", func(t *testing.T) {
		if _, err := ParseTimestamp("2030-01-02T09:00:00.123456789Z"); err != nil {
			t.Errorf("fractional seconds rejected: %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := ParseTimestamp("yesterday"); err == nil {
			t.Error("expected error for unparseable timestamp")
		}
	})
}

func TestTimestampsSortLexicographically(t *testing.T) {
	// Store-assigned stamps must order correctly as raw TEXT
	base := time.Date(2030, 1, 2, 9, 0, 0, 500000000, time.UTC)
	earlier := base.Add(-10 * time.Nanosecond).UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
	later := base.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
	if !(earlier < later) {
		t.Errorf("expected %q < %q under string comparison", earlier, later)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"now", now, "now"},
		{"seconds ahead", now.Add(30 * time.Second), "in 30 seconds"},
		{"one minute ahead", now.Add(90 * time.Second), "in 1 minute"},
		{"minutes ago", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"hours ahead", now.Add(3 * time.Hour), "in 3 hours"},
		{"one hour ago", now.Add(-90 * time.Minute), "1 hour ago"},
		{"days ahead", now.Add(49 * time.Hour), "in 2 days"},
		{"one day ago", now.Add(-25 * time.Hour), "1 day ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(tt.t, now); got != tt.want {
				t.Errorf("RelativeTime = %q, want %q", got, tt.want)
			}
		})
	}
}
