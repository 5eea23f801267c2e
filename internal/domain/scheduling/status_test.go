package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusAccepted, InitialStatus(true))
	assert.Equal(t, StatusPending, InitialStatus(false))
}

func TestTransicoes(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		check   func(Status) error
		allowed bool
	}{
		{"accept de pending", StatusPending, CanAccept, true},
		{"accept de accepted", StatusAccepted, CanAccept, false},
		{"accept de cancelled", StatusCancelled, CanAccept, false},
		{"cancel de pending", StatusPending, CanCancel, true},
		{"cancel de accepted", StatusAccepted, CanCancel, true},
		{"cancel de completed", StatusCompleted, CanCancel, false},
		{"cancel de cancelled", StatusCancelled, CanCancel, false},
		{"complete de accepted", StatusAccepted, CanComplete, true},
		{"complete de pending", StatusPending, CanComplete, false},
		{"reschedule de pending", StatusPending, CanReschedule, true},
		{"reschedule de accepted", StatusAccepted, CanReschedule, true},
		{"reschedule de completed", StatusCompleted, CanReschedule, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check(tc.from)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			}
		})
	}
}

func TestCancelMarcaTimestamp(t *testing.T) {
	b := &models.Booking{Status: string(StatusAccepted)}
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Cancel(b, now))
	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)

	// Cancelar de novo é transição inválida.
	err := Cancel(b, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCompleteMarcaTimestamp(t *testing.T) {
	b := &models.Booking{Status: string(StatusAccepted)}
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Complete(b, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)
}

func TestActiveStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{"pending", "accepted"}, ActiveStatuses())
}
