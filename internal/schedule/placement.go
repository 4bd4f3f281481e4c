package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInterval = errors.New("invalid interval")

// Interval est la représentation normalisée d'une plage horaire. Les deux
// formes du protocole (date-heure complète, ou date + heure séparées) sont
// fusionnées ici, à la frontière : le reste du code ne voit qu'un Interval.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval valide une plage déjà parsée.
func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, fmt.Errorf("%w: zero time", ErrInvalidInterval)
	}
	return Interval{Start: start, End: end}, nil
}

// IntervalFromDateTimes parse deux champs date-heure complets
// ("2006-01-02 15:04") dans le fuseau donné.
func IntervalFromDateTimes(startStr, endStr string, loc *time.Location) (Interval, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", startStr, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", endStr, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	return NewInterval(start, end)
}

// IntervalFromParts combine une date d'affichage et deux heures "HH:MM".
// Pour une même plage réelle, le résultat est identique à
// IntervalFromDateTimes : les deux formes produisent la même géométrie.
func IntervalFromParts(dateStr, startHM, endHM string, loc *time.Location) (Interval, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+startHM, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+endHM, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}
	return NewInterval(start, end)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Position est la géométrie pixel d'une entité posée sur la grille.
type Position struct {
	Top    int `json:"top"`
	Height int `json:"height"`
}

// MinEntityHeightPx évite les cartes de hauteur nulle quand les données
// portent une durée nulle ou négative.
const MinEntityHeightPx = 15

// ComputePosition calcule le placement d'une entité sur la grille du jour.
// top suit les minutes écoulées depuis startHour (négatif si l'entité
// commence avant la fenêtre, et l'appelant découpe), height est proportionnel
// à la durée, plancher à MinEntityHeightPx.
func ComputePosition(iv Interval, startHour, slotHeightPx, intervalMinutes int) Position {
	if intervalMinutes <= 0 {
		return Position{Height: MinEntityHeightPx}
	}

	startMins := iv.Start.Hour()*60 + iv.Start.Minute()
	durMins := int(iv.Duration().Minutes())

	top := (startMins - startHour*60) * slotHeightPx / intervalMinutes
	height := durMins * slotHeightPx / intervalMinutes
	if height < MinEntityHeightPx {
		height = MinEntityHeightPx
	}

	return Position{Top: top, Height: height}
}
