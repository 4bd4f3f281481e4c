package handlers

import (
	"testing"
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/config"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

func testCalendarHandler() *CalendarHandler {
	return &CalendarHandler{cfg: &config.Config{
		Timezone:        "America/Toronto",
		GridStartHour:   8,
		GridEndHour:     20,
		GridSlotMinutes: 30,
		SlotHeightPx:    60,
	}}
}

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func clinicTime(t *testing.T, loc *time.Location, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func TestBuildView_OneColumnPerProfessional(t *testing.T) {
	h := testCalendarHandler()
	loc := mustLoc(t)

	view := h.buildView(calendarDay{
		date:    clinicTime(t, loc, "2026-03-10 00:00"),
		dateStr: "2026-03-10",
		loc:     loc,
		professionals: []models.User{
			{ID: 7, Name: "Annie Bélanger", Role: models.RoleMassage},
			{ID: 8, Name: "Sophie Gagnon", Role: models.RoleEsthetics},
		},
		bookings: []models.Booking{
			{
				ID:             1,
				ProfessionalID: 7,
				StartTime:      clinicTime(t, loc, "2026-03-10 10:00"),
				EndTime:        clinicTime(t, loc, "2026-03-10 11:00"),
				Status:         "CONFIRMED",
				Client:         models.Client{Name: "Marie Tremblay"},
				Service:        models.Service{Name: "Massage suédois"},
			},
			{
				ID:             2,
				ProfessionalID: 8,
				StartTime:      clinicTime(t, loc, "2026-03-10 13:00"),
				EndTime:        clinicTime(t, loc, "2026-03-10 14:00"),
				Status:         "CONFIRMED",
				Client:         models.Client{Name: "Jean Roy"},
				Service:        models.Service{Name: "Soin du visage"},
			},
		},
	})

	if len(view.Columns) != 2 {
		t.Fatalf("expected one column per professional, got %d", len(view.Columns))
	}
	if view.Columns[0].ProfessionalID != 7 || view.Columns[1].ProfessionalID != 8 {
		t.Fatalf("columns out of order: %+v", view.Columns)
	}

	// chaque carte tombe dans la colonne de son professionnel
	if len(view.Columns[0].Bookings) != 1 || view.Columns[0].Bookings[0].ID != 1 {
		t.Fatalf("unexpected bookings in column 7: %+v", view.Columns[0].Bookings)
	}
	if len(view.Columns[1].Bookings) != 1 || view.Columns[1].Bookings[0].ID != 2 {
		t.Fatalf("unexpected bookings in column 8: %+v", view.Columns[1].Bookings)
	}

	// 10:00 sur une grille 08:00/60px : top 240, une heure fait 120px
	card := view.Columns[0].Bookings[0]
	if card.Top != 240 || card.Height != 120 {
		t.Fatalf("unexpected geometry top=%v height=%v", card.Top, card.Height)
	}

	// grille 08:00 à 20:00 par 30 min, bornes incluses
	if len(view.Columns[0].SlotStates) != 25 {
		t.Fatalf("expected 25 slot states, got %d", len(view.Columns[0].SlotStates))
	}
}

func TestBuildView_SearchFilterIsNonDestructive(t *testing.T) {
	h := testCalendarHandler()
	loc := mustLoc(t)

	bookings := []models.Booking{
		{
			ID:             1,
			ProfessionalID: 7,
			StartTime:      clinicTime(t, loc, "2026-03-10 10:00"),
			EndTime:        clinicTime(t, loc, "2026-03-10 11:00"),
			Client:         models.Client{Name: "Marie Tremblay"},
			Service:        models.Service{Name: "Massage suédois"},
		},
		{
			ID:             2,
			ProfessionalID: 7,
			StartTime:      clinicTime(t, loc, "2026-03-10 13:00"),
			EndTime:        clinicTime(t, loc, "2026-03-10 14:00"),
			Client:         models.Client{Name: "Jean Roy"},
			Service:        models.Service{Name: "Massage sportif"},
		},
	}

	view := h.buildView(calendarDay{
		date:    clinicTime(t, loc, "2026-03-10 00:00"),
		dateStr: "2026-03-10",
		search:  "marie",
		loc:     loc,
		professionals: []models.User{
			{ID: 7, Name: "Annie Bélanger", Role: models.RoleMassage},
		},
		bookings: bookings,
	})

	cards := view.Columns[0].Bookings
	if len(cards) != 1 || cards[0].ClientName != "Marie Tremblay" {
		t.Fatalf("search should keep only matching clients, got %+v", cards)
	}

	// le filtre ne touche qu'à la vue, jamais aux données chargées
	if len(bookings) != 2 {
		t.Fatalf("loaded bookings mutated, len %d", len(bookings))
	}
	if bookings[1].Client.Name != "Jean Roy" {
		t.Fatalf("loaded bookings mutated: %+v", bookings[1])
	}
}

func TestCalendarColumnScopeByRole(t *testing.T) {
	// admin et réception voient toutes les colonnes, un professionnel
	// ne voit que la sienne
	for _, role := range []string{models.RoleAdmin, models.RoleFrontDesk} {
		if !models.SeesAllColumns(role) {
			t.Fatalf("%s should see all columns", role)
		}
		if models.HoldsCalendar(role) {
			t.Fatalf("%s should not hold a calendar column", role)
		}
	}
	for _, role := range []string{models.RoleMassage, models.RoleEsthetics} {
		if models.SeesAllColumns(role) {
			t.Fatalf("%s should only see their own column", role)
		}
		if !models.HoldsCalendar(role) {
			t.Fatalf("%s should hold a calendar column", role)
		}
	}
}
