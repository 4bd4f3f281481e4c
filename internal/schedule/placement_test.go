package schedule

import (
	"testing"
	"time"
)

func mustLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestComputePosition_ReferenceGeometry(t *testing.T) {
	loc := mustLocation(t)

	// Grille 8h, cran 30 min, 60 px : 10:00–11:00 doit donner top 240, height 120.
	iv, err := IntervalFromDateTimes("2026-03-10 10:00", "2026-03-10 11:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := ComputePosition(iv, 8, 60, 30)
	if pos.Top != 240 {
		t.Fatalf("expected top 240, got %d", pos.Top)
	}
	if pos.Height != 120 {
		t.Fatalf("expected height 120, got %d", pos.Height)
	}
}

func TestComputePosition_BothWireShapesAgree(t *testing.T) {
	loc := mustLocation(t)

	a, err := IntervalFromDateTimes("2026-03-10 14:15", "2026-03-10 15:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := IntervalFromParts("2026-03-10", "14:15", "15:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pa := ComputePosition(a, 8, 60, 30)
	pb := ComputePosition(b, 8, 60, 30)
	if pa != pb {
		t.Fatalf("expected identical geometry, got %+v vs %+v", pa, pb)
	}
}

func TestComputePosition_HeightDependsOnlyOnDuration(t *testing.T) {
	loc := mustLocation(t)

	// Même durée à trois moments de la journée : même hauteur.
	windows := [][2]string{
		{"08:00", "08:45"},
		{"12:15", "13:00"},
		{"19:00", "19:45"},
	}

	var heights []int
	for _, w := range windows {
		iv, err := IntervalFromParts("2026-03-10", w[0], w[1], loc)
		if err != nil {
			t.Fatalf("%v: unexpected error %v", w, err)
		}
		pos := ComputePosition(iv, 8, 60, 30)
		if pos.Height <= 0 {
			t.Fatalf("%v: expected positive height, got %d", w, pos.Height)
		}
		heights = append(heights, pos.Height)
	}
	if heights[0] != heights[1] || heights[1] != heights[2] {
		t.Fatalf("equal durations must yield equal heights, got %v", heights)
	}
}

func TestComputePosition_MinHeightFloor(t *testing.T) {
	loc := mustLocation(t)

	// Durée nulle : la carte garde une hauteur plancher.
	iv, err := IntervalFromDateTimes("2026-03-10 10:00", "2026-03-10 10:00", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := ComputePosition(iv, 8, 60, 30)
	if pos.Height != MinEntityHeightPx {
		t.Fatalf("expected floor height %d, got %d", MinEntityHeightPx, pos.Height)
	}
}

func TestComputePosition_NegativeTopBeforeWindow(t *testing.T) {
	loc := mustLocation(t)

	iv, err := IntervalFromDateTimes("2026-03-10 07:00", "2026-03-10 08:30", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := ComputePosition(iv, 8, 60, 30)
	if pos.Top != -120 {
		t.Fatalf("expected top -120, got %d", pos.Top)
	}
	if pos.Height != 180 {
		t.Fatalf("expected height 180, got %d", pos.Height)
	}
}

func TestIntervalFromDateTimes_RejectsMalformed(t *testing.T) {
	loc := mustLocation(t)

	if _, err := IntervalFromDateTimes("pas-une-date", "2026-03-10 11:00", loc); err == nil {
		t.Fatal("expected error for malformed start")
	}
	if _, err := IntervalFromParts("2026-03-10", "10h00", "11:00", loc); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}

func TestNewInterval_RejectsZeroTimes(t *testing.T) {
	if _, err := NewInterval(time.Time{}, time.Now()); err == nil {
		t.Fatal("expected error for zero start")
	}
}
