package models

import "time"

type WorkingHours struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index" json:"professional_id"`

	// 0 = domingo ... 6 = sábado (time.Weekday)
	Weekday int `json:"weekday"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
