package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ProfessionalID uint `json:"professional_id"`
	Professional   User `gorm:"foreignKey:ProfessionalID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ServiceVariationID *uint             `json:"service_variation_id"`
	ServiceVariation   *ServiceVariation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_variation"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	Notes       string `gorm:"size:255" json:"notes"`
	RemindSMS   bool   `gorm:"default:false" json:"remind_sms"`
	RemindEmail bool   `gorm:"default:false" json:"remind_email"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
