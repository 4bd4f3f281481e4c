package booking

import (
	"context"
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

type Repository interface {
	// -------- Catalogue --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetServiceVariation(
		ctx context.Context,
		serviceID uint,
		variationID uint,
	) (*models.ServiceVariation, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	SaveBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		bookingID uint,
	) error

	// AssertNoTimeConflict échoue avec le code "time_conflict" si un autre
	// rendez-vous actif chevauche [start, end) pour ce professionnel.
	// excludeID écarte le rendez-vous en cours de déplacement.
	AssertNoTimeConflict(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) error

	// AssertSlotSchedulable échoue avec "blocked_day", "blocked_period" ou
	// "on_break" si la plage tombe sur un blocage ou une pause active.
	// Le serveur est l'autorité : le client ne fait que décourager le geste.
	AssertSlotSchedulable(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) error
}

// EventPublisher pousse les événements temps réel vers les sessions
// abonnées. Les consommateurs refont un fetch, jamais de patch incrémental.
type EventPublisher interface {
	Publish(ctx context.Context, kind string, payload any)
}
