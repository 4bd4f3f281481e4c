package models

import "time"

// Pause récurrente d'un professionnel. DayOfWeek nil = tous les jours.
// Les pauses inactives sont conservées pour réactivation, jamais supprimées
// implicitement.
type Break struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint `json:"professional_id"`

	StartTime string `gorm:"size:5" json:"start_time"` // "HH:MM"
	EndTime   string `gorm:"size:5" json:"end_time"`

	DayOfWeek *int `json:"day_of_week"` // 0=dimanche ... 6=samedi

	Label    string `gorm:"size:100" json:"label"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
