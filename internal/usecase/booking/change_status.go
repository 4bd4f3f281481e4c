package booking

import (
	"context"

	"github.com/SereniteSpa01/spa-scheduler/internal/audit"
	domain "github.com/SereniteSpa01/spa-scheduler/internal/domain/booking"
	"github.com/SereniteSpa01/spa-scheduler/internal/events"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	"github.com/SereniteSpa01/spa-scheduler/internal/timezone"
)

type ChangeStatusInput struct {
	RequestedBy uint
	BookingID   uint
	Status      string
}

type ChangeStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	bus    domain.EventPublisher
	tzName string
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	bus domain.EventPublisher,
	tzName string,
) *ChangeStatus {
	return &ChangeStatus{
		repo:   repo,
		audit:  audit,
		bus:    bus,
		tzName: tzName,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	to := domain.Status(in.Status)
	if err := domain.CanChange(domain.Status(bk.Status), to); err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.tzName)

	bk.Status = string(to)
	switch to {
	case domain.StatusCancelled:
		bk.CancelledAt = &now
	case domain.StatusCompleted:
		bk.CompletedAt = &now
	}

	if err := uc.repo.SaveBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.RequestedBy,
		Action:   "booking_status_" + string(to),
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	switch to {
	case domain.StatusCancelled:
		uc.bus.Publish(ctx, events.EventBookingCancelled, bk)
	case domain.StatusArrived:
		// la réception est notifiée de l'arrivée en plus du changement
		uc.bus.Publish(ctx, events.EventBookingUpdated, bk)
		uc.bus.Publish(ctx, events.EventClientArrived, bk)
	default:
		uc.bus.Publish(ctx, events.EventBookingUpdated, bk)
	}

	return bk, nil
}
