package models

import "time"

// Bloqueio de agenda criado pelo profissional (horário pessoal ou
// blackout de last-minute). Participa da detecção de conflito igual
// a um booking, mas sem cliente nem serviço.
type BlockedTime struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index" json:"professional_id"`

	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`

	Reason string `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
