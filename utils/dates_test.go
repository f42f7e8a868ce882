package utils

import (
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	in := time.Date(2024, time.March, 5, 17, 42, 9, 0, time.FixedZone("SGT", 8*3600))
	got := DateOf(in)
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf(%v) = %v, want %v", in, got, want)
	}
}

func TestBeginningOfWeek(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		// Monday maps to itself.
		{time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC), time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		// Midweek rolls back to Monday.
		{time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		// Sunday belongs to the week that started six days earlier.
		{time.Date(2024, time.January, 7, 23, 59, 0, 0, time.UTC), time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := BeginningOfWeek(tc.in); !got.Equal(tc.want) {
			t.Errorf("BeginningOfWeek(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Error("expected error for malformed date")
	}
}
