package schedule

import (
	"testing"
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

func hmPtr(s string) *string { return &s }

func dowPtr(d int) *int { return &d }

func TestResolve_FullDayBlockOverridesEverything(t *testing.T) {
	// Mercredi 11 mars 2026.
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	blocks := []models.AvailabilityBlock{
		{ID: 1, ProfessionalID: 7, Date: date, Reason: "Congé"},
	}
	breaks := []models.Break{
		{ID: 1, ProfessionalID: 7, StartTime: "12:00", EndTime: "13:00", Label: "Pause déjeuner", IsActive: true},
	}

	occ := Resolve(7, date, "12:30", blocks, breaks)
	if occ.Kind != Blocked {
		t.Fatalf("expected blocked, got %s", occ.Kind)
	}
	if occ.Reason != "Congé" {
		t.Fatalf("expected reason Congé, got %q", occ.Reason)
	}
}

func TestResolve_PeriodBlockHalfOpenBounds(t *testing.T) {
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	blocks := []models.AvailabilityBlock{
		{ID: 2, ProfessionalID: 7, Date: date, StartTime: hmPtr("10:00"), EndTime: hmPtr("12:00"), Reason: "Formation"},
	}

	if occ := Resolve(7, date, "10:00", blocks, nil); occ.Kind != Blocked {
		t.Fatalf("start bound should be blocked, got %s", occ.Kind)
	}
	if occ := Resolve(7, date, "11:30", blocks, nil); occ.Kind != Blocked {
		t.Fatalf("interior slot should be blocked, got %s", occ.Kind)
	}
	// Borne de fin exclue.
	if occ := Resolve(7, date, "12:00", blocks, nil); occ.Kind != Free {
		t.Fatalf("end bound should be free, got %s", occ.Kind)
	}
}

func TestResolve_LunchBreak(t *testing.T) {
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	breaks := []models.Break{
		{ID: 1, ProfessionalID: 7, StartTime: "12:00", EndTime: "13:00", Label: "Pause déjeuner", IsActive: true},
	}

	occ := Resolve(7, date, "12:30", nil, breaks)
	if occ.Kind != OnBreak {
		t.Fatalf("expected on_break, got %s", occ.Kind)
	}
	if occ.Label != "Pause déjeuner" {
		t.Fatalf("expected label Pause déjeuner, got %q", occ.Label)
	}
}

func TestResolve_InactiveBreakIgnored(t *testing.T) {
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	breaks := []models.Break{
		{ID: 1, ProfessionalID: 7, StartTime: "12:00", EndTime: "13:00", IsActive: false},
	}

	if occ := Resolve(7, date, "12:30", nil, breaks); occ.Kind != Free {
		t.Fatalf("inactive break must never mark a slot, got %s", occ.Kind)
	}
}

func TestResolve_BreakDayOfWeek(t *testing.T) {
	// Mercredi = 3, jeudi = 4.
	wednesday := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	thursday := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	breaks := []models.Break{
		{ID: 1, ProfessionalID: 7, StartTime: "12:00", EndTime: "13:00", DayOfWeek: dowPtr(3), IsActive: true},
	}

	if occ := Resolve(7, wednesday, "12:30", nil, breaks); occ.Kind != OnBreak {
		t.Fatalf("expected on_break on Wednesday, got %s", occ.Kind)
	}
	if occ := Resolve(7, thursday, "12:30", nil, breaks); occ.Kind != Free {
		t.Fatalf("expected free on Thursday, got %s", occ.Kind)
	}
}

func TestResolve_NilDayOfWeekAppliesEveryDay(t *testing.T) {
	breaks := []models.Break{
		{ID: 1, ProfessionalID: 7, StartTime: "12:00", EndTime: "13:00", IsActive: true},
	}

	for day := 9; day <= 15; day++ {
		date := time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
		if occ := Resolve(7, date, "12:30", nil, breaks); occ.Kind != OnBreak {
			t.Fatalf("day %d: expected on_break, got %s", day, occ.Kind)
		}
	}
}

func TestResolve_OtherProfessionalUnaffected(t *testing.T) {
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	blocks := []models.AvailabilityBlock{
		{ID: 1, ProfessionalID: 7, Date: date},
	}
	breaks := []models.Break{
		{ID: 1, ProfessionalID: 7, StartTime: "12:00", EndTime: "13:00", IsActive: true},
	}

	if occ := Resolve(8, date, "12:30", blocks, breaks); occ.Kind != Free {
		t.Fatalf("expected free for professional 8, got %s", occ.Kind)
	}
}

func TestResolve_BlockOnAnotherDateIgnored(t *testing.T) {
	blocked := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	other := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	blocks := []models.AvailabilityBlock{
		{ID: 1, ProfessionalID: 7, Date: blocked},
	}

	if occ := Resolve(7, other, "10:00", blocks, nil); occ.Kind != Free {
		t.Fatalf("expected free on another date, got %s", occ.Kind)
	}
}

func TestResolve_PeriodBlockWinsOverBreak(t *testing.T) {
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	blocks := []models.AvailabilityBlock{
		{ID: 1, ProfessionalID: 7, Date: date, StartTime: hmPtr("12:00"), EndTime: hmPtr("14:00"), Reason: "Entretien"},
	}
	breaks := []models.Break{
		{ID: 1, ProfessionalID: 7, StartTime: "12:00", EndTime: "13:00", Label: "Pause déjeuner", IsActive: true},
	}

	occ := Resolve(7, date, "12:30", blocks, breaks)
	if occ.Kind != Blocked {
		t.Fatalf("period block must win over break, got %s", occ.Kind)
	}
}
