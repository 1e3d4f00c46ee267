package models

import "time"

type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       string  `gorm:"size:255;not null" json:"name"`
	Email      string  `gorm:"size:255" json:"email"`
	Position   string  `gorm:"size:100" json:"position"`
	HourlyRate float64 `json:"hourly_rate"`
	IsActive   bool    `gorm:"not null;default:true" json:"is_active"`
}
