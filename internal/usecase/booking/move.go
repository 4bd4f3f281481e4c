package booking

import (
	"context"
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/audit"
	domain "github.com/SereniteSpa01/spa-scheduler/internal/domain/booking"
	"github.com/SereniteSpa01/spa-scheduler/internal/events"
	"github.com/SereniteSpa01/spa-scheduler/internal/httperr"
	"github.com/SereniteSpa01/spa-scheduler/internal/models"
	"github.com/SereniteSpa01/spa-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// Dépôt d'un glisser-déposer : nouveau professionnel + cran cible. La durée
// originale est préservée, seul le début se déplace. Date absente = même
// jour qu'avant.
type MoveBookingInput struct {
	RequestedBy uint
	BookingID   uint

	TargetProfessionalID uint
	TargetTime           string // "15:04"
	TargetDate           string // "2006-01-02", optionnel
}

// ======================================================
// USE CASE
// ======================================================

type MoveBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	bus    domain.EventPublisher
	tzName string
}

func NewMoveBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	bus domain.EventPublisher,
	tzName string,
) *MoveBooking {
	return &MoveBooking{
		repo:   repo,
		audit:  audit,
		bus:    bus,
		tzName: tzName,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Tout-ou-rien : toute vérification échouée sort avant la moindre écriture,
// l'état stocké reste celui d'avant le glissement et un refetch montre la
// carte à sa position d'origine.
func (uc *MoveBooking) Execute(
	ctx context.Context,
	in MoveBookingInput,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	dateStr := in.TargetDate
	if dateStr == "" {
		dateStr = bk.StartTime.In(timezone.Location(uc.tzName)).Format("2006-01-02")
	}

	newStart, err := timezone.ParseDateTime(uc.tzName, dateStr, in.TargetTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// Garde auto-dépôt : même professionnel, même cran → aucun appel de
	// mise à jour, on rend l'entité telle quelle.
	if in.TargetProfessionalID == bk.ProfessionalID && newStart.Equal(bk.StartTime) {
		return bk, nil
	}

	duration := bk.EndTime.Sub(bk.StartTime)
	newEnd := newStart.Add(duration)

	if err := uc.repo.AssertSlotSchedulable(ctx, in.TargetProfessionalID, newStart, newEnd); err != nil {
		return nil, err
	}

	if err := uc.repo.AssertNoTimeConflict(ctx, in.TargetProfessionalID, newStart, newEnd, bk.ID); err != nil {
		return nil, err
	}

	prevProfessional := bk.ProfessionalID
	prevStart := bk.StartTime

	bk.ProfessionalID = in.TargetProfessionalID
	bk.StartTime = newStart
	bk.EndTime = newEnd

	if err := uc.repo.SaveBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.RequestedBy,
		Action:   "booking_moved",
		Entity:   "booking",
		EntityID: &bk.ID,
		Metadata: map[string]any{
			"from_professional": prevProfessional,
			"from_start":        prevStart,
			"to_professional":   bk.ProfessionalID,
			"to_start":          bk.StartTime,
		},
	})

	uc.bus.Publish(ctx, events.EventBookingUpdated, bk)

	return bk, nil
}

// ======================================================
// MOVE BREAK
// ======================================================

type MoveBreakInput struct {
	RequestedBy uint
	BreakID     uint

	TargetProfessionalID uint
	TargetTime           string // "15:04"
}

// BreakMover isole la dépendance gorm du reste du paquet : le déplacement
// d'une pause décale les heures "HH:MM" en préservant la durée en minutes.
type BreakMover interface {
	GetBreak(ctx context.Context, id uint) (*models.Break, error)
	SaveBreak(ctx context.Context, br *models.Break) error
}

type MoveBreak struct {
	repo  BreakMover
	audit *audit.Dispatcher
}

func NewMoveBreak(repo BreakMover, audit *audit.Dispatcher) *MoveBreak {
	return &MoveBreak{repo: repo, audit: audit}
}

func (uc *MoveBreak) Execute(
	ctx context.Context,
	in MoveBreakInput,
) (*models.Break, error) {

	br, err := uc.repo.GetBreak(ctx, in.BreakID)
	if err != nil {
		return nil, httperr.ErrBusiness("break_not_found")
	}

	if in.TargetProfessionalID == br.ProfessionalID && in.TargetTime == br.StartTime {
		return br, nil
	}

	oldStart, err := time.Parse("15:04", br.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_break_times")
	}
	oldEnd, err := time.Parse("15:04", br.EndTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_break_times")
	}
	newStart, err := time.Parse("15:04", in.TargetTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	duration := oldEnd.Sub(oldStart)
	newEnd := newStart.Add(duration)
	if newEnd.Day() != newStart.Day() {
		return nil, httperr.ErrBusiness("break_past_midnight")
	}

	br.ProfessionalID = in.TargetProfessionalID
	br.StartTime = newStart.Format("15:04")
	br.EndTime = newEnd.Format("15:04")

	if err := uc.repo.SaveBreak(ctx, br); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.RequestedBy,
		Action:   "break_moved",
		Entity:   "break",
		EntityID: &br.ID,
	})

	return br, nil
}
