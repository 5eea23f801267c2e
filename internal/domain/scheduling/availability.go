package scheduling

import "time"

type AvailabilityInput struct {
	SalonID        uint
	ProfessionalID uint
	OfferingID     uint
	Date           time.Time // dia local (zona do salão)
}

// TimeSlot é um horário livre candidato, em instantes absolutos.
type TimeSlot struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}
