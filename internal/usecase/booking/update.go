package booking

import (
	"context"
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/audit"
	domain "github.com/SereniteSpa01/spa-scheduler/internal/domain/booking"
	"github.com/SereniteSpa01/spa-scheduler/internal/events"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	"github.com/SereniteSpa01/spa-scheduler/internal/schedule"
	"github.com/SereniteSpa01/spa-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// Édition partielle depuis le panneau latéral. Un changement de service
// recalcule la durée depuis le catalogue; un changement de date ou d'heure
// repasse par les mêmes gardes serveur que la création et le déplacement.
type UpdateBookingInput struct {
	RequestedBy uint
	BookingID   uint

	Date *string // "2006-01-02"
	Time *string // "15:04"

	ServiceID          *uint
	ServiceVariationID *uint

	Notes       *string
	RemindSMS   *bool
	RemindEmail *bool
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	bus    domain.EventPublisher
	tzName string
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	bus domain.EventPublisher,
	tzName string,
) *UpdateBooking {
	return &UpdateBooking{
		repo:   repo,
		audit:  audit,
		bus:    bus,
		tzName: tzName,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	loc := timezone.Location(uc.tzName)
	newStart := bk.StartTime
	duration := bk.EndTime.Sub(bk.StartTime)

	if in.Date != nil || in.Time != nil {
		dateStr := bk.StartTime.In(loc).Format("2006-01-02")
		timeStr := bk.StartTime.In(loc).Format("15:04")
		if in.Date != nil {
			dateStr = *in.Date
		}
		if in.Time != nil {
			timeStr = *in.Time
		}
		parsed, err := timezone.ParseDateTime(uc.tzName, dateStr, timeStr)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}
		newStart = parsed
	}

	if in.ServiceID != nil {
		svc, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		bk.ServiceID = svc.ID
		bk.ServiceVariationID = nil
		duration = time.Duration(svc.DurationMin) * time.Minute

		if in.ServiceVariationID != nil {
			variation, err := uc.repo.GetServiceVariation(ctx, svc.ID, *in.ServiceVariationID)
			if err != nil {
				return nil, httperr.ErrBusiness("variation_not_found")
			}
			bk.ServiceVariationID = &variation.ID
			duration = time.Duration(variation.DurationMin) * time.Minute
		}
	}

	newEnd := schedule.RoundUpToHalfHour(newStart.Add(duration))

	// Les mêmes gardes que la création et le déplacement : blocages et
	// pauses d'abord, puis chevauchement de rendez-vous.
	timeChanged := !newStart.Equal(bk.StartTime) || !newEnd.Equal(bk.EndTime)
	if timeChanged {
		if err := uc.repo.AssertSlotSchedulable(ctx, bk.ProfessionalID, newStart, newEnd); err != nil {
			return nil, err
		}
		if err := uc.repo.AssertNoTimeConflict(ctx, bk.ProfessionalID, newStart, newEnd, bk.ID); err != nil {
			return nil, err
		}
		bk.StartTime = newStart
		bk.EndTime = newEnd
	}

	if in.Notes != nil {
		bk.Notes = *in.Notes
	}
	if in.RemindSMS != nil {
		bk.RemindSMS = *in.RemindSMS
	}
	if in.RemindEmail != nil {
		bk.RemindEmail = *in.RemindEmail
	}

	if err := uc.repo.SaveBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.RequestedBy,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	uc.bus.Publish(ctx, events.EventBookingUpdated, bk)

	return bk, nil
}
