package schedule

import (
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/models"
)

type OccupancyKind string

const (
	Free    OccupancyKind = "free"
	Blocked OccupancyKind = "blocked"
	OnBreak OccupancyKind = "on_break"
)

// Occupancy classifie un cran pour un professionnel/date. Les rendez-vous ne
// passent pas par ici : ils sont une couche géométrique indépendante posée
// par-dessus la grille. La grille ne régit que ce qui peut être planifié.
type Occupancy struct {
	Kind   OccupancyKind `json:"kind"`
	Reason string        `json:"reason,omitempty"`
	Label  string        `json:"label,omitempty"`

	Block    *models.AvailabilityBlock `json:"-"`
	BreakRef *models.Break             `json:"-"`
}

// Resolve détermine l'état d'un cran. Priorité : blocage journée complète >
// blocage de période > pause > libre. Les pauses inactives et celles d'un
// autre jour de semaine sont ignorées.
func Resolve(
	professionalID uint,
	date time.Time,
	slotHM string,
	blocks []models.AvailabilityBlock,
	breaks []models.Break,
) Occupancy {

	slotMins, err := MinutesOfDay(slotHM)
	if err != nil {
		return Occupancy{Kind: Free}
	}

	// 1. Blocage journée complète, vérifié en premier.
	for i := range blocks {
		b := &blocks[i]
		if b.ProfessionalID != professionalID || !sameDate(b.Date, date) {
			continue
		}
		if b.IsFullDay() {
			return Occupancy{Kind: Blocked, Reason: b.Reason, Block: b}
		}
	}

	// 2. Blocage de période : [start, end) contient le cran.
	for i := range blocks {
		b := &blocks[i]
		if b.ProfessionalID != professionalID || !sameDate(b.Date, date) {
			continue
		}
		if b.StartTime == nil || b.EndTime == nil {
			continue
		}
		start, err1 := MinutesOfDay(*b.StartTime)
		end, err2 := MinutesOfDay(*b.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if slotMins >= start && slotMins < end {
			return Occupancy{Kind: Blocked, Reason: b.Reason, Block: b}
		}
	}

	// 3. Pause récurrente : DayOfWeek nil = tous les jours.
	weekday := int(date.Weekday())
	for i := range breaks {
		br := &breaks[i]
		if br.ProfessionalID != professionalID || !br.IsActive {
			continue
		}
		if br.DayOfWeek != nil && *br.DayOfWeek != weekday {
			continue
		}
		start, err1 := MinutesOfDay(br.StartTime)
		end, err2 := MinutesOfDay(br.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if slotMins >= start && slotMins < end {
			return Occupancy{Kind: OnBreak, Label: br.Label, BreakRef: br}
		}
	}

	return Occupancy{Kind: Free}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
