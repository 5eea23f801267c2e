package models

import "time"

const (
	LocationSalon  = "salon"
	LocationMobile = "mobile"
)

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ProfessionalID uint         `gorm:"index" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ScheduledStart time.Time `gorm:"index" json:"scheduled_start"`
	// EndsAt é derivado (start + duração + buffer) e mantido pela camada de
	// persistência para a query de vizinhança e a exclusion constraint.
	EndsAt time.Time `json:"ends_at"`

	TotalDurationMinutes int `json:"total_duration_minutes"`
	BufferMinutes        int `json:"buffer_minutes"`

	LocationType string `gorm:"size:10;default:'salon'" json:"location_type"`
	Status       string `gorm:"size:20;default:'pending'" json:"status"`

	PriceCents int64 `json:"price_cents"`

	Items []BookingItem `json:"items"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OccupiedUntil é o fim do intervalo ocupado, incluindo buffer.
func (b *Booking) OccupiedUntil() time.Time {
	return b.ScheduledStart.Add(time.Duration(b.TotalDurationMinutes+b.BufferMinutes) * time.Minute)
}

type BookingItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index" json:"booking_id"`

	ServiceOfferingID uint   `json:"service_offering_id"`
	Name              string `gorm:"size:100" json:"name"`
	DurationMinutes   int    `json:"duration_minutes"`
	PriceCents        int64  `json:"price_cents"`
}
