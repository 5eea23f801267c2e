package models

import "time"

// Serviço oferecido pelo salão. Duração e preço em valores inteiros:
// minutos e centavos. Durações específicas por local (salão / domicílio)
// sobrescrevem a duração padrão quando presentes.
type ServiceOffering struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50" json:"category"`

	DurationMin       int  `json:"duration_min"`
	SalonDurationMin  *int `json:"salon_duration_min"`
	MobileDurationMin *int `json:"mobile_duration_min"`

	PriceCents int64 `json:"price_cents"`

	SalonEnabled  bool `gorm:"default:true" json:"salon_enabled"`
	MobileEnabled bool `gorm:"default:false" json:"mobile_enabled"`
	Active        bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DurationFor resolve a duração para o tipo de local do atendimento.
func (s *ServiceOffering) DurationFor(locationType string) int {
	switch locationType {
	case LocationMobile:
		if s.MobileDurationMin != nil && *s.MobileDurationMin > 0 {
			return *s.MobileDurationMin
		}
	case LocationSalon:
		if s.SalonDurationMin != nil && *s.SalonDurationMin > 0 {
			return *s.SalonDurationMin
		}
	}
	return s.DurationMin
}

// OfferedAt indica se o serviço está ativo para o tipo de local.
func (s *ServiceOffering) OfferedAt(locationType string) bool {
	if !s.Active {
		return false
	}
	switch locationType {
	case LocationSalon:
		return s.SalonEnabled
	case LocationMobile:
		return s.MobileEnabled
	}
	return false
}
