package scheduling

import (
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

// ===============================
// Booking Status
// ===============================

// Ciclo de vida: pending → accepted → completed, com cancelamento a
// partir de pending ou accepted. Cancelado sai do conflito mas fica
// no histórico — booking nunca é deletado, só transiciona.

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// InitialStatus: agendamento criado pelo próprio profissional já nasce
// aceito; o público entra pendente e espera aprovação.
func InitialStatus(professionalInitiated bool) Status {
	if professionalInitiated {
		return StatusAccepted
	}
	return StatusPending
}

// ===============================
// Validations
// ===============================

func CanAccept(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusAccepted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusAccepted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if current != StatusPending && current != StatusAccepted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ActiveStatuses são os status que ocupam agenda (entram no conflito).
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusAccepted)}
}

// ===============================
// Domain Actions
// ===============================

func Accept(b *models.Booking) error {
	if err := CanAccept(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusAccepted)
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}
