package dto

import (
	"time"

	"github.com/SereniteSpa01/spa-scheduler/internal/schedule"
)

// Vue calendrier assemblée côté serveur : une colonne par professionnel
// visible, la grille de crans avec son état d'occupation, et les cartes
// (rendez-vous, pauses) avec leur géométrie pixel.
type CalendarViewDTO struct {
	Date  string              `json:"date"`
	Grid  GridParamsDTO       `json:"grid"`
	Slots []schedule.TimeSlot `json:"slots"`

	Columns []CalendarColumnDTO `json:"columns"`
}

type GridParamsDTO struct {
	StartHour       int `json:"start_hour"`
	EndHour         int `json:"end_hour"`
	IntervalMinutes int `json:"interval_minutes"`
	SlotHeightPx    int `json:"slot_height_px"`
}

type CalendarColumnDTO struct {
	ProfessionalID   uint   `json:"professional_id"`
	ProfessionalName string `json:"professional_name"`
	Role             string `json:"role"`
	PhotoURL         string `json:"photo_url,omitempty"`

	SlotStates []SlotStateDTO   `json:"slot_states"`
	Bookings   []BookingCardDTO `json:"bookings"`
	Breaks     []BreakCardDTO   `json:"breaks"`
}

// État d'un cran : libre, bloqué (avec raison) ou en pause (avec étiquette).
// Les rendez-vous ne figurent pas ici : couche géométrique indépendante.
type SlotStateDTO struct {
	Time           string                 `json:"time"`
	IsHourBoundary bool                   `json:"is_hour_boundary"`
	State          schedule.OccupancyKind `json:"state"`
	Reason         string                 `json:"reason,omitempty"`
	Label          string                 `json:"label,omitempty"`
	BlockID        *uint                  `json:"block_id,omitempty"`
	BreakID        *uint                  `json:"break_id,omitempty"`
}

type BookingCardDTO struct {
	ID     uint      `json:"id"`
	Status string    `json:"status"`
	Top    int       `json:"top"`
	Height int       `json:"height"`
	Start  time.Time `json:"start_time"`
	End    time.Time `json:"end_time"`

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ServiceName string `json:"service_name"`
	Notes       string `json:"notes,omitempty"`
}

type BreakCardDTO struct {
	ID     uint   `json:"id"`
	Label  string `json:"label"`
	Top    int    `json:"top"`
	Height int    `json:"height"`
	Start  string `json:"start_time"`
	End    string `json:"end_time"`
}
