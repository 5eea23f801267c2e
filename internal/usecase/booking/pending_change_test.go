package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StudioBelezaApp/salon-scheduler/internal/audit"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/notification"
)

func newPendingFixture() (*fakeRepo, *PendingChange) {
	repo, _ := newFixture()

	notifier := notification.NewDispatcher(notification.LogSender{})
	auditDisp := audit.NewDispatcher(audit.New(nil))

	reschedule := NewRescheduleBooking(repo, NopLocker{}, notifier, auditDisp)
	pending := NewPendingChange(repo, NopLocker{}, reschedule, auditDisp)

	return repo, pending
}

func TestProposeSemConflito(t *testing.T) {
	repo, uc := newPendingFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")

	p, err := uc.Propose(context.Background(), ProposeChangeInput{
		SalonID:        1,
		ProfessionalID: 2,
		EntityType:     EntityBooking,
		EntityID:       100,
		NewStart:       strPtr(laRFC3339(14, 0)),
	})
	require.NoError(t, err)

	assert.Empty(t, p.Conflicts)
	assert.False(t, p.OutsideWorkingHours)
	assert.True(t, p.CanConfirm)
	assert.Equal(t, laUTC(14, 0), p.Start)
	assert.Equal(t, laUTC(14, 45), p.End)
}

func TestProposeComConflito(t *testing.T) {
	repo, uc := newPendingFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")
	seedBooking(repo, 101, laUTC(14, 0), laUTC(15, 0), "accepted")

	p, err := uc.Propose(context.Background(), ProposeChangeInput{
		SalonID:        1,
		ProfessionalID: 2,
		EntityType:     EntityBooking,
		EntityID:       100,
		NewStart:       strPtr(laRFC3339(14, 30)),
	})
	require.NoError(t, err)

	// A proposta não falha: devolve o diagnóstico.
	require.Len(t, p.Conflicts, 1)
	assert.Equal(t, laUTC(14, 0), p.Conflicts[0].Start)
	assert.False(t, p.CanConfirm)
}

func TestProposeForaDoExpedienteViraFlag(t *testing.T) {
	repo, uc := newPendingFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")

	p, err := uc.Propose(context.Background(), ProposeChangeInput{
		SalonID:        1,
		ProfessionalID: 2,
		EntityType:     EntityBooking,
		EntityID:       100,
		NewStart:       strPtr(laRFC3339(7, 0)),
	})
	require.NoError(t, err)

	assert.True(t, p.OutsideWorkingHours)
	assert.Empty(t, p.Conflicts)
	assert.True(t, p.CanConfirm)
}

func TestConfirmForaDoExpedienteExigeOverride(t *testing.T) {
	repo, uc := newPendingFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")

	in := ConfirmChangeInput{
		ProposeChangeInput: ProposeChangeInput{
			SalonID:        1,
			ProfessionalID: 2,
			EntityType:     EntityBooking,
			EntityID:       100,
			NewStart:       strPtr(laRFC3339(7, 0)),
		},
	}

	// Sem o reconhecimento, rejeita.
	_, err := uc.Confirm(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	// Com ele, confirma.
	in.AllowOutsideHours = true
	res, err := uc.Confirm(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, res.Booking)
	assert.Equal(t, laUTC(7, 0), res.Booking.ScheduledStart)
}

// Conflito de agenda nunca é sobreponível, nem com override.
func TestConfirmConflitoNaoTemOverride(t *testing.T) {
	repo, uc := newPendingFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")
	seedBooking(repo, 101, laUTC(14, 0), laUTC(15, 0), "accepted")

	_, err := uc.Confirm(context.Background(), ConfirmChangeInput{
		ProposeChangeInput: ProposeChangeInput{
			SalonID:        1,
			ProfessionalID: 2,
			EntityType:     EntityBooking,
			EntityID:       100,
			NewStart:       strPtr(laRFC3339(14, 30)),
		},
		AllowOutsideHours: true,
	})
	assert.True(t, httperr.IsBusiness(err, "time_slot_unavailable"))
}

func TestProposeBlockPulaExpediente(t *testing.T) {
	repo, uc := newPendingFixture()

	repo.blocks[200] = &models.BlockedTime{
		ID:             200,
		ProfessionalID: 2,
		StartAt:        laUTC(12, 0),
		EndAt:          laUTC(13, 0),
	}

	// Madrugada: fora do expediente, mas bloqueio não tem essa regra.
	p, err := uc.Propose(context.Background(), ProposeChangeInput{
		SalonID:        1,
		ProfessionalID: 2,
		EntityType:     EntityBlock,
		EntityID:       200,
		NewStart:       strPtr(laRFC3339(3, 0)),
	})
	require.NoError(t, err)

	assert.False(t, p.OutsideWorkingHours)
	assert.True(t, p.CanConfirm)
}

func TestConfirmBlockMove(t *testing.T) {
	repo, uc := newPendingFixture()

	repo.blocks[200] = &models.BlockedTime{
		ID:             200,
		ProfessionalID: 2,
		StartAt:        laUTC(12, 0),
		EndAt:          laUTC(13, 0),
	}

	res, err := uc.Confirm(context.Background(), ConfirmChangeInput{
		ProposeChangeInput: ProposeChangeInput{
			SalonID:        1,
			ProfessionalID: 2,
			EntityType:     EntityBlock,
			EntityID:       200,
			NewStart:       strPtr(laRFC3339(15, 0)),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Block)
	assert.Equal(t, laUTC(15, 0), res.Block.StartAt)
	assert.Equal(t, laUTC(16, 0), res.Block.EndAt)
}

// Mover bloqueio preserva o comprimento exato: nada de grade nem de
// limites de duração de serviço.
func TestConfirmBlockMovePreservaDuracao(t *testing.T) {
	repo, uc := newPendingFixture()

	// 100 minutos, fora da grade de 15.
	repo.blocks[200] = &models.BlockedTime{
		ID:             200,
		ProfessionalID: 2,
		StartAt:        laUTC(12, 0),
		EndAt:          laUTC(13, 40),
	}

	res, err := uc.Confirm(context.Background(), ConfirmChangeInput{
		ProposeChangeInput: ProposeChangeInput{
			SalonID:        1,
			ProfessionalID: 2,
			EntityType:     EntityBlock,
			EntityID:       200,
			NewStart:       strPtr(laRFC3339(15, 0)),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 100*time.Minute, res.Block.EndAt.Sub(res.Block.StartAt))
}

func TestConfirmBlockDiaInteiro(t *testing.T) {
	repo, uc := newPendingFixture()

	// Bloqueio de 24h (férias de um dia) não pode encolher ao mover.
	repo.blocks[200] = &models.BlockedTime{
		ID:             200,
		ProfessionalID: 2,
		StartAt:        laUTC(0, 0),
		EndAt:          laUTC(0, 0).Add(24 * time.Hour),
	}

	res, err := uc.Confirm(context.Background(), ConfirmChangeInput{
		ProposeChangeInput: ProposeChangeInput{
			SalonID:        1,
			ProfessionalID: 2,
			EntityType:     EntityBlock,
			EntityID:       200,
			NewStart:       strPtr(laRFC3339(1, 0)),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, res.Block.EndAt.Sub(res.Block.StartAt))
}

func TestConfirmBlockDuracaoExplicitaSemGrade(t *testing.T) {
	repo, uc := newPendingFixture()

	repo.blocks[200] = &models.BlockedTime{
		ID:             200,
		ProfessionalID: 2,
		StartAt:        laUTC(12, 0),
		EndAt:          laUTC(13, 0),
	}

	res, err := uc.Confirm(context.Background(), ConfirmChangeInput{
		ProposeChangeInput: ProposeChangeInput{
			SalonID:            1,
			ProfessionalID:     2,
			EntityType:         EntityBlock,
			EntityID:           200,
			NewDurationMinutes: intPtr(100),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, laUTC(12, 0), res.Block.StartAt)
	assert.Equal(t, laUTC(13, 40), res.Block.EndAt)
}

// Bloqueio movido não conflita com a própria posição antiga.
func TestConfirmBlockSemAutoConflito(t *testing.T) {
	repo, uc := newPendingFixture()

	repo.blocks[200] = &models.BlockedTime{
		ID:             200,
		ProfessionalID: 2,
		StartAt:        laUTC(12, 0),
		EndAt:          laUTC(13, 0),
	}

	_, err := uc.Confirm(context.Background(), ConfirmChangeInput{
		ProposeChangeInput: ProposeChangeInput{
			SalonID:        1,
			ProfessionalID: 2,
			EntityType:     EntityBlock,
			EntityID:       200,
			NewStart:       strPtr(laRFC3339(12, 30)),
		},
	})
	assert.NoError(t, err)
}

func TestConfirmBlockConflitaComBooking(t *testing.T) {
	repo, uc := newPendingFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(11, 0), "accepted")

	repo.blocks[200] = &models.BlockedTime{
		ID:             200,
		ProfessionalID: 2,
		StartAt:        laUTC(12, 0),
		EndAt:          laUTC(13, 0),
	}

	_, err := uc.Confirm(context.Background(), ConfirmChangeInput{
		ProposeChangeInput: ProposeChangeInput{
			SalonID:        1,
			ProfessionalID: 2,
			EntityType:     EntityBlock,
			EntityID:       200,
			NewStart:       strPtr(laRFC3339(10, 30)),
		},
	})
	assert.True(t, httperr.IsBusiness(err, "time_slot_unavailable"))
}

func TestProposeEntidadeInvalida(t *testing.T) {
	_, uc := newPendingFixture()

	_, err := uc.Propose(context.Background(), ProposeChangeInput{
		SalonID:        1,
		ProfessionalID: 2,
		EntityType:     "banana",
		EntityID:       1,
	})
	assert.True(t, httperr.IsBusiness(err, "validation_error"))
}
