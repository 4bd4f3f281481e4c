package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/audit"
	domain "github.com/SereniteSpa01/spa-scheduler/internal/domain/availability"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type GeneratePeriodInput struct {
	RequestedBy    uint
	ProfessionalID uint
	StartDate      time.Time
	EndDate        time.Time
}

type GeneratePeriodResult struct {
	Message string `json:"message"`
	Period  string `json:"period"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

// ======================================================
// USE CASE
// ======================================================

// GeneratePeriod déroule le gabarit hebdomadaire sur une plage de dates.
// Les dates qui possèdent déjà un enregistrement explicite sont sautées :
// une édition manuelle n'est jamais écrasée par le gabarit.
type GeneratePeriod struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewGeneratePeriod(repo domain.Repository, audit *audit.Dispatcher) *GeneratePeriod {
	return &GeneratePeriod{repo: repo, audit: audit}
}

func (uc *GeneratePeriod) Execute(
	ctx context.Context,
	in GeneratePeriodInput,
) (*GeneratePeriodResult, error) {

	if in.EndDate.Before(in.StartDate) {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	template, err := uc.repo.ListWeeklyTemplate(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if len(template) == 0 {
		return nil, httperr.ErrBusiness("empty_weekly_template")
	}

	byWeekday := make(map[int]models.WeeklyAvailability, len(template))
	for _, t := range template {
		byWeekday[t.Weekday] = t
	}

	created, skipped := 0, 0

	for d := in.StartDate; !d.After(in.EndDate); d = d.AddDate(0, 0, 1) {
		tpl, ok := byWeekday[int(d.Weekday())]
		if !ok || !tpl.Active {
			continue
		}

		exists, err := uc.repo.DayAvailabilityExists(ctx, in.ProfessionalID, d)
		if err != nil {
			return nil, err
		}
		if exists {
			skipped++
			continue
		}

		day := models.DayAvailability{
			ProfessionalID: in.ProfessionalID,
			Date:           d,
			StartTime:      tpl.StartTime,
			EndTime:        tpl.EndTime,
			IsAvailable:    true,
		}
		if err := uc.repo.CreateDayAvailability(ctx, &day); err != nil {
			return nil, err
		}
		created++
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &in.RequestedBy,
		Action: "schedule_period_generated",
		Entity: "day_availability",
		Metadata: map[string]any{
			"professional_id": in.ProfessionalID,
			"created":         created,
			"skipped":         skipped,
		},
	})

	return &GeneratePeriodResult{
		Message: "Horaire généré.",
		Period: fmt.Sprintf(
			"%s — %s",
			in.StartDate.Format("2006-01-02"),
			in.EndDate.Format("2006-01-02"),
		),
		Created: created,
		Skipped: skipped,
	}, nil
}
