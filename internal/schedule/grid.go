package schedule

import (
	"fmt"
	"time"
)

// TimeSlot est un cran de la grille affichée. IsHourBoundary sert uniquement
// à l'emphase visuelle des heures pleines.
type TimeSlot struct {
	Time           string `json:"time"` // "HH:MM"
	IsHourBoundary bool   `json:"is_hour_boundary"`
}

// GenerateTimeSlots produit la séquence ordonnée des crans entre startHour et
// endHour inclusivement. Déterministe, strictement croissante.
func GenerateTimeSlots(startHour, endHour, intervalMinutes int) []TimeSlot {
	if intervalMinutes <= 0 || endHour <= startHour {
		return nil
	}

	var slots []TimeSlot
	for m := startHour * 60; m <= endHour*60; m += intervalMinutes {
		slots = append(slots, TimeSlot{
			Time:           FormatMinutes(m),
			IsHourBoundary: m%60 == 0,
		})
	}
	return slots
}

// TimeToOffset convertit une heure murale en décalage pixel, linéaire dans les
// minutes écoulées depuis startHour. Les heures hors fenêtre extrapolent
// (décalage négatif ou au-delà du bas de grille) : le découpage visuel
// appartient à l'appelant, un rendez-vous peut légitimement déborder.
func TimeToOffset(hm string, startHour, slotHeightPx, intervalMinutes int) (int, error) {
	mins, err := MinutesOfDay(hm)
	if err != nil {
		return 0, err
	}
	if intervalMinutes <= 0 {
		return 0, fmt.Errorf("invalid interval: %d", intervalMinutes)
	}

	elapsed := mins - startHour*60
	return elapsed * slotHeightPx / intervalMinutes, nil
}

// MinutesOfDay parse "HH:MM" en minutes depuis minuit.
func MinutesOfDay(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// RoundUpToHalfHour arrondit au prochain multiple de 30 minutes. Une heure
// déjà sur la frontière reste inchangée.
func RoundUpToHalfHour(t time.Time) time.Time {
	rem := t.Minute() % 30
	if rem == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	t = t.Truncate(time.Minute)
	return t.Add(time.Duration(30-rem) * time.Minute)
}
