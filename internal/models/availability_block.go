package models

import "time"

// Blocage explicite pour une date précise. StartTime et EndTime absents
// tous les deux = journée complète bloquée.
type AvailabilityBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint `json:"professional_id"`

	Date time.Time `json:"date"`

	StartTime *string `gorm:"size:5" json:"start_time"`
	EndTime   *string `gorm:"size:5" json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsFullDay : un blocage sans plage horaire couvre la journée entière,
// peu importe les pauses ou créneaux ouverts.
func (b *AvailabilityBlock) IsFullDay() bool {
	return b.StartTime == nil && b.EndTime == nil
}
