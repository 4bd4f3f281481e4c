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

// Deux formes de payload mutuellement exclusives : client existant par id,
// ou nouveau client par champs (nom et téléphone obligatoires). Jamais les
// deux à la fois.
type CreateBookingInput struct {
	RequestedBy    uint
	ProfessionalID uint

	ClientID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID          uint
	ServiceVariationID *uint

	Date string // "2006-01-02"
	Time string // "15:04"

	Notes       string
	RemindSMS   bool
	RemindEmail bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	bus    domain.EventPublisher
	tzName string
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	bus domain.EventPublisher,
	tzName string,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  audit,
		bus:    bus,
		tzName: tzName,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// 1. Forme du payload : client existant OU nouveau client, jamais les deux
	hasInline := in.ClientName != "" || in.ClientPhone != "" || in.ClientEmail != ""
	if in.ClientID != nil && hasInline {
		return nil, httperr.ErrBusiness("ambiguous_client_payload")
	}
	if in.ClientID == nil {
		if in.ClientName == "" || in.ClientPhone == "" {
			return nil, httperr.ErrBusiness("missing_client_fields")
		}
	}

	// 2. Date et heure dans le fuseau de la clinique
	start, err := timezone.ParseDateTime(uc.tzName, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// 3. Service / variante : durée et prix viennent du catalogue
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	duration := svc.DurationMin
	if in.ServiceVariationID != nil {
		variation, err := uc.repo.GetServiceVariation(ctx, in.ServiceID, *in.ServiceVariationID)
		if err != nil {
			return nil, httperr.ErrBusiness("variation_not_found")
		}
		duration = variation.DurationMin
	}
	if duration <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	// 4. Fin = début + durée, arrondie à la demi-heure supérieure
	end := schedule.RoundUpToHalfHour(start.Add(time.Duration(duration) * time.Minute))

	// 5. Le créneau doit être planifiable (blocages, pauses)
	if err := uc.repo.AssertSlotSchedulable(ctx, in.ProfessionalID, start, end); err != nil {
		return nil, err
	}

	// 6. Client
	var clientID uint
	if in.ClientID != nil {
		client, err := uc.repo.GetClient(ctx, *in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		clientID = client.ID
	} else {
		client, err := uc.repo.GetOrCreateClient(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
		if err != nil {
			return nil, err
		}
		clientID = client.ID
	}

	// 7. Conflit de rendez-vous
	if err := uc.repo.AssertNoTimeConflict(ctx, in.ProfessionalID, start, end, 0); err != nil {
		return nil, err
	}

	// 8. Création
	bk := &models.Booking{
		ClientID:           clientID,
		ProfessionalID:     in.ProfessionalID,
		ServiceID:          svc.ID,
		ServiceVariationID: in.ServiceVariationID,
		StartTime:          start,
		EndTime:            end,
		Status:             string(domain.InitialStatus()),
		Notes:              in.Notes,
		RemindSMS:          in.RemindSMS,
		RemindEmail:        in.RemindEmail,
	}

	if err := uc.repo.CreateBooking(ctx, bk); err != nil {
		return nil, err
	}

	// 9. Audit + temps réel
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.RequestedBy,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	uc.bus.Publish(ctx, events.EventBookingCreated, bk)

	return bk, nil
}
