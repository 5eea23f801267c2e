package dto

import "time"

type BookingItemDTO struct {
	ServiceOfferingID uint   `json:"service_offering_id"`
	Name              string `json:"name"`
	DurationMinutes   int    `json:"duration_minutes"`
	PriceCents        int64  `json:"price_cents"`
}

type BookingListDTO struct {
	ID                   uint             `json:"id"`
	Reference            string           `json:"reference"`
	ScheduledStart       time.Time        `json:"scheduled_start"`
	EndsAt               time.Time        `json:"ends_at"`
	TotalDurationMinutes int              `json:"total_duration_minutes"`
	BufferMinutes        int              `json:"buffer_minutes"`
	LocationType         string           `json:"location_type"`
	Status               string           `json:"status"`
	PriceCents           int64            `json:"price_cents"`
	ClientName           string           `json:"client_name"`
	ClientPhone          string           `json:"client_phone"`
	Notes                string           `json:"notes"`
	Items                []BookingItemDTO `json:"items"`
}

type OpeningDTO struct {
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Tier        string    `json:"tier"`
	DiscountPct int       `json:"discount_pct"`
	PriceCents  int64     `json:"price_cents"`
}
