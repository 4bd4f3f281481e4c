package booking

import "github.com/SereniteSpa01/spa-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusArrived    Status = "ARRIVED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusNoShow     Status = "NO_SHOW"
	StatusCancelled  Status = "CANCELLED"
)

var all = map[Status]bool{
	StatusPending:    true,
	StatusConfirmed:  true,
	StatusArrived:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusNoShow:     true,
	StatusCancelled:  true,
}

// Valid vérifie seulement l'appartenance. Aucune table de transitions :
// n'importe quel statut est atteignable depuis n'importe quel autre par
// action explicite, comportement volontairement permissif.
func (s Status) Valid() bool {
	return all[s]
}

// CanChange rejette uniquement les statuts inconnus.
func CanChange(from, to Status) error {
	if !to.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
