package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/audit"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

type fakeAvailabilityRepo struct {
	template []models.WeeklyAvailability
	existing map[string]bool // "2006-01-02" → déjà en base

	created []models.DayAvailability
}

func (f *fakeAvailabilityRepo) ListWeeklyTemplate(_ context.Context, _ uint) ([]models.WeeklyAvailability, error) {
	return f.template, nil
}

func (f *fakeAvailabilityRepo) DayAvailabilityExists(_ context.Context, _ uint, date time.Time) (bool, error) {
	return f.existing[date.Format("2006-01-02")], nil
}

func (f *fakeAvailabilityRepo) CreateDayAvailability(_ context.Context, day *models.DayAvailability) error {
	f.created = append(f.created, *day)
	return nil
}

func nopDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return d
}

func weekdays(start, end int, from, to string) []models.WeeklyAvailability {
	var tpl []models.WeeklyAvailability
	for d := start; d <= end; d++ {
		tpl = append(tpl, models.WeeklyAvailability{
			Weekday: d, StartTime: from, EndTime: to, Active: true,
		})
	}
	return tpl
}

func TestGeneratePeriod_ExpandsTemplate(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		// Lundi à vendredi, 9h-17h.
		template: weekdays(1, 5, "09:00", "17:00"),
		existing: map[string]bool{},
	}

	uc := NewGeneratePeriod(repo, nopDispatcher())

	// Lundi 9 mars au dimanche 15 mars 2026.
	res, err := uc.Execute(context.Background(), GeneratePeriodInput{
		ProfessionalID: 7,
		StartDate:      date(t, "2026-03-09"),
		EndDate:        date(t, "2026-03-15"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Created != 5 {
		t.Fatalf("expected 5 created weekdays, got %d", res.Created)
	}
	if res.Skipped != 0 {
		t.Fatalf("expected 0 skipped, got %d", res.Skipped)
	}
	if len(repo.created) != 5 {
		t.Fatalf("expected 5 records, got %d", len(repo.created))
	}
	for _, day := range repo.created {
		if day.StartTime != "09:00" || day.EndTime != "17:00" {
			t.Fatalf("unexpected hours %s-%s", day.StartTime, day.EndTime)
		}
		if !day.IsAvailable {
			t.Fatal("generated day must be available")
		}
	}
}

func TestGeneratePeriod_NeverOverwritesManualEdits(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		template: weekdays(1, 5, "09:00", "17:00"),
		existing: map[string]bool{
			// Mercredi édité à la main : doit être sauté.
			"2026-03-11": true,
		},
	}

	uc := NewGeneratePeriod(repo, nopDispatcher())

	res, err := uc.Execute(context.Background(), GeneratePeriodInput{
		ProfessionalID: 7,
		StartDate:      date(t, "2026-03-09"),
		EndDate:        date(t, "2026-03-13"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Created != 4 || res.Skipped != 1 {
		t.Fatalf("expected 4 created / 1 skipped, got %d / %d", res.Created, res.Skipped)
	}
	for _, day := range repo.created {
		if day.Date.Format("2006-01-02") == "2026-03-11" {
			t.Fatal("manually edited day was overwritten")
		}
	}
}

func TestGeneratePeriod_InactiveWeekdaySkipped(t *testing.T) {
	tpl := weekdays(1, 2, "09:00", "17:00")
	tpl[1].Active = false // mardi fermé

	repo := &fakeAvailabilityRepo{template: tpl, existing: map[string]bool{}}
	uc := NewGeneratePeriod(repo, nopDispatcher())

	res, err := uc.Execute(context.Background(), GeneratePeriodInput{
		ProfessionalID: 7,
		StartDate:      date(t, "2026-03-09"),
		EndDate:        date(t, "2026-03-10"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 1 {
		t.Fatalf("expected only Monday created, got %d", res.Created)
	}
}

func TestGeneratePeriod_InvalidPeriod(t *testing.T) {
	repo := &fakeAvailabilityRepo{template: weekdays(1, 5, "09:00", "17:00")}
	uc := NewGeneratePeriod(repo, nopDispatcher())

	_, err := uc.Execute(context.Background(), GeneratePeriodInput{
		ProfessionalID: 7,
		StartDate:      date(t, "2026-03-15"),
		EndDate:        date(t, "2026-03-09"),
	})
	if httperr.BusinessCode(err) != "invalid_period" {
		t.Fatalf("expected invalid_period, got %v", err)
	}
}

func TestGeneratePeriod_EmptyTemplate(t *testing.T) {
	repo := &fakeAvailabilityRepo{existing: map[string]bool{}}
	uc := NewGeneratePeriod(repo, nopDispatcher())

	_, err := uc.Execute(context.Background(), GeneratePeriodInput{
		ProfessionalID: 7,
		StartDate:      date(t, "2026-03-09"),
		EndDate:        date(t, "2026-03-13"),
	})
	if httperr.BusinessCode(err) != "empty_weekly_template" {
		t.Fatalf("expected empty_weekly_template, got %v", err)
	}
}
