package booking

import (
	"context"

	"github.com/SereniteSpa01/spa-scheduler/internal/audit"
	domain "github.com/SereniteSpa01/spa-scheduler/internal/domain/booking"
	"github.com/SereniteSpa01/spa-scheduler/internal/events"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	bus   domain.EventPublisher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	bus domain.EventPublisher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
		bus:   bus,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	requestedBy uint,
	bookingID uint,
) error {

	bk, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return httperr.ErrBusiness("booking_not_found")
	}

	if err := uc.repo.DeleteBooking(ctx, bk.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &requestedBy,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	uc.bus.Publish(ctx, events.EventBookingCancelled, bk)

	return nil
}
