package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-03-10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Year() != 2025 || got.Month() != time.March || got.Day() != 10 {
			t.Errorf("got %v", got)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := TruncateToDay(time.Now())
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		if _, err := ParseDate("10/03/2025"); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got %v, want ErrInvalidDateFormat", err)
		}
	})
}

func TestParseNatural(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)

	tests := []struct {
		text string
		want time.Time
	}{
		{"in 30 minutes", now.Add(30 * time.Minute)},
		{"in 2 hours", now.Add(2 * time.Hour)},
		{"tomorrow", time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local)},
		{"tomorrow at 9", time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local)},
		{"today evening", time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local)},
		{"3pm", time.Date(2025, 3, 10, 15, 0, 0, 0, time.Local)},
		{"6:30 pm", time.Date(2025, 3, 10, 18, 30, 0, 0, time.Local)},
		{"12am", time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)},
		{"2025-03-12", time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)},
		{"2025-03-12T14:30:00", time.Date(2025, 3, 12, 14, 30, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, ok := ParseNatural(tt.text, now)
		if !ok {
			t.Errorf("ParseNatural(%q) failed to parse", tt.text)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseNatural(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseNaturalUnparseable(t *testing.T) {
	now := time.Now()
	for _, text := range []string{"", "   ", "whenever", "soonish"} {
		if _, ok := ParseNatural(text, now); ok {
			t.Errorf("ParseNatural(%q) unexpectedly parsed", text)
		}
	}
}
