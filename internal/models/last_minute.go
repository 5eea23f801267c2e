package models

import "time"

// Configuração de last-minute por profissional. Percentuais inteiros
// em [0,50]; preço mínimo em centavos quando presente.
type LastMinuteSettings struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex" json:"professional_id"`

	Enabled          bool `json:"enabled"`
	DiscountsEnabled bool `json:"discounts_enabled"`

	SameDayPct   int `json:"same_day_pct"`
	Within24hPct int `json:"within_24h_pct"`

	MinPriceCents *int64 `json:"min_price_cents"`

	// Bitmask por weekday (bit 0 = domingo ... bit 6 = sábado).
	DisabledWeekdays int `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *LastMinuteSettings) WeekdayDisabled(wd time.Weekday) bool {
	return s.DisabledWeekdays&(1<<int(wd)) != 0
}

func (s *LastMinuteSettings) SetDisabledWeekdays(days []int) {
	mask := 0
	for _, d := range days {
		if d >= 0 && d <= 6 {
			mask |= 1 << d
		}
	}
	s.DisabledWeekdays = mask
}

func (s *LastMinuteSettings) DisabledWeekdayList() []int {
	out := []int{}
	for d := 0; d <= 6; d++ {
		if s.DisabledWeekdays&(1<<d) != 0 {
			out = append(out, d)
		}
	}
	return out
}

// Regra por serviço: permite desligar um serviço do last-minute ou
// impor um piso de preço próprio.
type LastMinuteServiceRule struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index:idx_lm_rule,unique" json:"professional_id"`

	ServiceOfferingID uint `gorm:"index:idx_lm_rule,unique" json:"service_offering_id"`

	Enabled       bool   `json:"enabled"`
	MinPriceCents *int64 `json:"min_price_cents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
