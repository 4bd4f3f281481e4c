package models

import "time"

// Horaire effectif d'un professionnel pour une date précise. Produit par
// l'expansion du gabarit hebdomadaire ou édité à la main.
type DayAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint      `gorm:"index:idx_day_avail,unique" json:"professional_id"`
	Date           time.Time `gorm:"index:idx_day_avail,unique" json:"date"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	IsAvailable bool   `gorm:"default:true" json:"is_available"`
	Reason      string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Gabarit hebdomadaire, une ligne par jour de semaine.
type WeeklyAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint `json:"professional_id"`
	Weekday        int  `json:"weekday"` // 0=dimanche ... 6=samedi

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
