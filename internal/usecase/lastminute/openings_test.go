package lastminute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	booking "github.com/StudioBelezaApp/salon-scheduler/internal/usecase/booking"
)

func mondayLocal() time.Time {
	loc, _ := time.LoadLocation(testTZ)
	return time.Date(2026, 3, 9, 0, 0, 0, 0, loc)
}

func newOpeningsFixture() (*fakeRepo, *ListOpenings) {
	repo, eng := newEngineFixture()
	availability := booking.NewGetAvailability(repo)
	return repo, NewListOpenings(availability, eng)
}

func TestListOpeningsSoFuturas(t *testing.T) {
	_, uc := newOpeningsFixture()

	// Expediente 09:00-17:00, passos de 45 min. Às 14:00 só sobram
	// as vagas que começam depois de agora: 14:15, 15:00 e 15:45.
	openings, err := uc.Execute(context.Background(), ListOpeningsInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     10,
		Date:           mondayLocal(),
		Now:            la(9, 14, 0),
	})
	require.NoError(t, err)

	require.Len(t, openings, 3)
	assert.Equal(t, la(9, 14, 15), openings[0].StartAt)
	assert.Equal(t, la(9, 15, 0), openings[1].StartAt)
	assert.Equal(t, la(9, 15, 45), openings[2].StartAt)

	for _, o := range openings {
		assert.Equal(t, TierSameDay, o.Tier)
		assert.Equal(t, 30, o.DiscountPct)
		assert.EqualValues(t, 10500, o.PriceCents)
		assert.Equal(t, uint(2), o.ProfessionalID)
		assert.Equal(t, uint(10), o.OfferingID)
	}
}

func TestListOpeningsBloqueioRemoveVaga(t *testing.T) {
	repo, uc := newOpeningsFixture()

	repo.blocks = []scheduling.TimeInterval{
		{Start: la(9, 15, 0), End: la(9, 15, 45)},
	}

	openings, err := uc.Execute(context.Background(), ListOpeningsInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     10,
		Date:           mondayLocal(),
		Now:            la(9, 14, 0),
	})
	require.NoError(t, err)

	require.Len(t, openings, 2)
	assert.Equal(t, la(9, 14, 15), openings[0].StartAt)
	assert.Equal(t, la(9, 15, 45), openings[1].StartAt)
}

func TestListOpeningsCompromissoRemoveVaga(t *testing.T) {
	repo, uc := newOpeningsFixture()

	repo.commitments = []scheduling.TimeInterval{
		{Start: la(9, 14, 15), End: la(9, 15, 0)},
	}

	openings, err := uc.Execute(context.Background(), ListOpeningsInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     10,
		Date:           mondayLocal(),
		Now:            la(9, 14, 0),
	})
	require.NoError(t, err)

	require.Len(t, openings, 2)
	assert.Equal(t, la(9, 15, 0), openings[0].StartAt)
}

func TestListOpeningsDesligadoVoltaVazio(t *testing.T) {
	repo, uc := newOpeningsFixture()
	repo.settings.Enabled = false

	openings, err := uc.Execute(context.Background(), ListOpeningsInput{
		SalonID:        1,
		ProfessionalID: 2,
		OfferingID:     10,
		Date:           mondayLocal(),
		Now:            la(9, 14, 0),
	})
	require.NoError(t, err)
	assert.Empty(t, openings)
}
