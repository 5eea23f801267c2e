package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
)

func laDate() time.Time {
	loc, _ := time.LoadLocation(laTZ)
	return time.Date(2026, 3, 9, 0, 0, 0, 0, loc)
}

func TestAvailability(t *testing.T) {
	repo, _ := newFixture()

	// Janela curta para o teste: 09:00-12:00, serviço de 45 min
	// (snap para a grade dá passos de 45).
	repo.hours[2] = scheduling.WeeklyHours{
		1: {Active: true, StartTime: "09:00", EndTime: "12:00"},
	}

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), scheduling.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     10,
		Date:           laDate(),
	})
	require.NoError(t, err)

	// 09:00, 09:45, 10:30, 11:15 cabem; 12:00 já estoura.
	require.Len(t, slots, 4)
	assert.Equal(t, laUTC(9, 0), slots[0].StartAt)
	assert.Equal(t, laUTC(9, 45), slots[0].EndAt)
	assert.Equal(t, laUTC(11, 15), slots[3].StartAt)
}

func TestAvailabilityComCompromisso(t *testing.T) {
	repo, _ := newFixture()

	repo.hours[2] = scheduling.WeeklyHours{
		1: {Active: true, StartTime: "09:00", EndTime: "12:00"},
	}

	seedBooking(repo, 100, laUTC(9, 30), laUTC(10, 30), "accepted")

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), scheduling.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     10,
		Date:           laDate(),
	})
	require.NoError(t, err)

	// 09:00 e 10:30 colidem? 09:00-09:45 colide (booking 09:30-10:30);
	// 09:45-10:30 colide; 10:30-11:15 encosta e é livre; 11:15-12:00 livre.
	require.Len(t, slots, 2)
	assert.Equal(t, laUTC(10, 30), slots[0].StartAt)
	assert.Equal(t, laUTC(11, 15), slots[1].StartAt)
}

func TestAvailabilityDiaFechado(t *testing.T) {
	repo, _ := newFixture()

	// Domingo não tem janela configurada.
	loc, _ := time.LoadLocation(laTZ)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), scheduling.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     10,
		Date:           sunday,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilityServicoDesconhecido(t *testing.T) {
	repo, _ := newFixture()

	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), scheduling.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     999,
		Date:           laDate(),
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_offered"))
}

func TestAvailabilityJanelaInvalida(t *testing.T) {
	repo, _ := newFixture()

	repo.hours[2] = scheduling.WeeklyHours{
		1: {Active: true, StartTime: "17:00", EndTime: "09:00"},
	}

	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), scheduling.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     10,
		Date:           laDate(),
	})
	assert.True(t, httperr.IsBusiness(err, "misconfigured_hours"))
}

func TestAvailabilityDuracaoPorModalidade(t *testing.T) {
	repo, _ := newFixture()

	// Duração específica de salão vence a genérica.
	ninety := 90
	repo.offerings[10].SalonDurationMin = &ninety

	repo.hours[2] = scheduling.WeeklyHours{
		1: {Active: true, StartTime: "09:00", EndTime: "12:00"},
	}

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), scheduling.AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     10,
		Date:           laDate(),
	})
	require.NoError(t, err)

	// Passos de 90 min: 09:00 e 10:30.
	require.Len(t, slots, 2)
	assert.Equal(t, laUTC(9, 0), slots[0].StartAt)
	assert.Equal(t, laUTC(10, 30), slots[1].StartAt)
}
