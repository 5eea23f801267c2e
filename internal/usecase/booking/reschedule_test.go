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

func newRescheduleFixture() (*fakeRepo, *RescheduleBooking) {
	repo, _ := newFixture()

	uc := NewRescheduleBooking(
		repo,
		NopLocker{},
		notification.NewDispatcher(notification.LogSender{}),
		audit.NewDispatcher(audit.New(nil)),
	)

	return repo, uc
}

func seedBooking(repo *fakeRepo, id uint, start, end time.Time, status string) *models.Booking {
	b := &models.Booking{
		ID:                   id,
		SalonID:              1,
		ProfessionalID:       2,
		ClientID:             5,
		ScheduledStart:       start,
		EndsAt:               end,
		TotalDurationMinutes: int(end.Sub(start) / time.Minute),
		Status:               status,
	}
	repo.bookings[id] = b
	return b
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestReschedule(t *testing.T) {
	repo, uc := newRescheduleFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")

	b, err := uc.Execute(context.Background(), RescheduleBookingInput{
		SalonID:        1,
		ProfessionalID: 2,
		BookingID:      100,
		NewStart:       strPtr(laRFC3339(14, 0)),
	})
	require.NoError(t, err)

	assert.Equal(t, laUTC(14, 0), b.ScheduledStart)
	assert.Equal(t, laUTC(14, 45), b.EndsAt)
	assert.Equal(t, 45, b.TotalDurationMinutes)
}

// Mover para o mesmo horário não pode conflitar consigo mesmo.
func TestRescheduleSemAutoConflito(t *testing.T) {
	repo, uc := newRescheduleFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")

	_, err := uc.Execute(context.Background(), RescheduleBookingInput{
		SalonID:        1,
		ProfessionalID: 2,
		BookingID:      100,
		NewStart:       strPtr(laRFC3339(10, 0)),
	})
	assert.NoError(t, err)
}

func TestRescheduleConflitaComOutro(t *testing.T) {
	repo, uc := newRescheduleFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")
	seedBooking(repo, 101, laUTC(14, 0), laUTC(15, 0), "accepted")

	_, err := uc.Execute(context.Background(), RescheduleBookingInput{
		SalonID:        1,
		ProfessionalID: 2,
		BookingID:      100,
		NewStart:       strPtr(laRFC3339(14, 30)),
	})
	assert.True(t, httperr.IsBusiness(err, "time_slot_unavailable"))
}

func TestRescheduleForaDoExpediente(t *testing.T) {
	repo, uc := newRescheduleFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")

	in := RescheduleBookingInput{
		SalonID:        1,
		ProfessionalID: 2,
		BookingID:      100,
		NewStart:       strPtr(laRFC3339(7, 0)),
	}

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	// Com o reconhecimento explícito passa.
	in.AllowOutsideHours = true
	b, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, laUTC(7, 0), b.ScheduledStart)
}

func TestRescheduleEstadoInvalido(t *testing.T) {
	repo, uc := newRescheduleFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "completed")

	_, err := uc.Execute(context.Background(), RescheduleBookingInput{
		SalonID:        1,
		ProfessionalID: 2,
		BookingID:      100,
		NewStart:       strPtr(laRFC3339(14, 0)),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestResize(t *testing.T) {
	repo, uc := newRescheduleFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")

	b, err := uc.Resize(context.Background(), 1, 2, 100, 90, false)
	require.NoError(t, err)

	// Início intacto, fim estendido.
	assert.Equal(t, laUTC(10, 0), b.ScheduledStart)
	assert.Equal(t, laUTC(11, 30), b.EndsAt)
	assert.Equal(t, 90, b.TotalDurationMinutes)
}

func TestResizeNaoPassaPorCimaDoVizinho(t *testing.T) {
	repo, uc := newRescheduleFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")
	seedBooking(repo, 101, laUTC(11, 0), laUTC(12, 0), "accepted")

	_, err := uc.Resize(context.Background(), 1, 2, 100, 90, false)
	assert.True(t, httperr.IsBusiness(err, "time_slot_unavailable"))
}

func TestRescheduleNaoEncontrado(t *testing.T) {
	_, uc := newRescheduleFixture()

	_, err := uc.Execute(context.Background(), RescheduleBookingInput{
		SalonID:        1,
		ProfessionalID: 2,
		BookingID:      999,
		NewStart:       strPtr(laRFC3339(14, 0)),
	})
	assert.True(t, httperr.IsBusiness(err, "not_found"))
}

func TestRescheduleDuracaoForaDaGradeIgnorada(t *testing.T) {
	repo, uc := newRescheduleFixture()
	seedBooking(repo, 100, laUTC(10, 0), laUTC(10, 45), "accepted")

	// 50 não é múltiplo de 15: cai de volta na duração atual.
	b, err := uc.Execute(context.Background(), RescheduleBookingInput{
		SalonID:            1,
		ProfessionalID:     2,
		BookingID:          100,
		NewDurationMinutes: intPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, 45, b.TotalDurationMinutes)
}
