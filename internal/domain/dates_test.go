package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Monday stays", "2025-01-20", "2025-01-20"},
		{"Wednesday rolls back", "2025-01-22", "2025-01-20"},
		{"Saturday rolls back", "2025-01-25", "2025-01-20"},
		{"Sunday rolls back six days", "2025-01-26", "2025-01-20"},
		{"Across month boundary", "2025-02-01", "2025-01-27"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekStart(tc.in); got != tc.want {
				t.Errorf("WeekStart(%s) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}

	t.Run("Idempotent", func(t *testing.T) {
		once := WeekStart("2025-01-23")
		if twice := WeekStart(once); twice != once {
			t.Errorf("Expected normalization to be idempotent, got %s then %s", once, twice)
		}
	})

	t.Run("InvalidInputUnchanged", func(t *testing.T) {
		if got := WeekStart("not-a-date"); got != "not-a-date" {
			t.Errorf("Expected invalid input back unchanged, got %s", got)
		}
	})
}

func TestWeekEnd(t *testing.T) {
	if got := WeekEnd("2025-01-20"); got != "2025-01-26" {
		t.Errorf("Expected 2025-01-26, got %s", got)
	}
	if got := WeekEnd("2025-12-29"); got != "2026-01-04" {
		t.Errorf("Expected year rollover to 2026-01-04, got %s", got)
	}
}

func TestWeekDates(t *testing.T) {
	want := []string{
		"2025-01-20", "2025-01-21", "2025-01-22", "2025-01-23",
		"2025-01-24", "2025-01-25", "2025-01-26",
	}
	if got := WeekDates("2025-01-20"); !reflect.DeepEqual(got, want) {
		t.Errorf("WeekDates = %v, want %v", got, want)
	}
	if got := WeekDates("bogus"); got != nil {
		t.Errorf("Expected nil for invalid input, got %v", got)
	}
}

func TestTimestamp(t *testing.T) {
	t.Run("ParsesAsRFC3339", func(t *testing.T) {
		if _, err := time.Parse(time.RFC3339Nano, Timestamp()); err != nil {
			t.Fatalf("Expected a parseable stamp, got %v", err)
		}
	})

	t.Run("FixedWidth", func(t *testing.T) {
		width := len(Timestamp())
		for i := 0; i < 50; i++ {
			if got := len(Timestamp()); got != width {
				t.Fatalf("Expected every stamp %d chars wide, got %d", width, got)
			}
		}
	})

	t.Run("BackToBackStampsOrdered", func(t *testing.T) {
		prev := Timestamp()
		for i := 0; i < 50; i++ {
			next := Timestamp()
			if next <= prev {
				t.Fatalf("Expected strictly increasing stamps, got %s then %s", prev, next)
			}
			prev = next
		}
	})
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-01-20"); err != nil {
		t.Errorf("Expected valid date to parse, got %v", err)
	}
	_, err := ParseDate("20/01/2025")
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Expected ErrInvalidDate, got %v", err)
	}
}
