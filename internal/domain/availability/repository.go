package availability

import (
	"context"
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

type Repository interface {
	ListWeeklyTemplate(
		ctx context.Context,
		professionalID uint,
	) ([]models.WeeklyAvailability, error)

	DayAvailabilityExists(
		ctx context.Context,
		professionalID uint,
		date time.Time,
	) (bool, error)

	CreateDayAvailability(
		ctx context.Context,
		day *models.DayAvailability,
	) error
}
