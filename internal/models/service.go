package models

import "time"

type ServiceCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Services []Service `gorm:"foreignKey:CategoryID" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CategoryID uint `json:"category_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	Variations []ServiceVariation `json:"variations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Variante nommée d'un service, avec sa propre durée et son propre prix
// (ex. « Massage suédois — 90 min »).
type ServiceVariation struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ServiceID uint `json:"service_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
