package handlers

import "testing"

func TestWeekdayOf(t *testing.T) {
	cases := []struct {
		date string
		want int
		ok   bool
	}{
		{"2026-03-08", 0, true}, // dimanche
		{"2026-03-09", 1, true}, // lundi
		{"2026-03-14", 6, true}, // samedi
		{"2026-13-40", 0, false},
		{"pas-une-date", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := weekdayOf(tc.date)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("weekdayOf(%q) = (%d, %v), want (%d, %v)", tc.date, got, ok, tc.want, tc.ok)
		}
	}
}
