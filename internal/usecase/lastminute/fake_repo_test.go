package lastminute

import (
	"context"
	"errors"
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

// fakeRepo cobre só o que o motor de last-minute e a varredura de
// disponibilidade consultam; o resto não é alcançado por estes testes.
type fakeRepo struct {
	salon    *models.Salon
	offering *models.ServiceOffering
	hours    scheduling.WeeklyHours

	commitments []scheduling.TimeInterval
	blocks      []scheduling.TimeInterval

	settings *models.LastMinuteSettings
	rule     *models.LastMinuteServiceRule
}

var errFakeUnused = errors.New("não alcançado pelos testes")

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, errFakeUnused
	}
	return f.salon, nil
}

func (f *fakeRepo) GetSalonBySlug(context.Context, string) (*models.Salon, error) {
	return nil, errFakeUnused
}

func (f *fakeRepo) GetOffering(_ context.Context, _ uint, offeringID uint) (*models.ServiceOffering, error) {
	if f.offering == nil || f.offering.ID != offeringID {
		return nil, errors.New("registro não encontrado")
	}
	return f.offering, nil
}

func (f *fakeRepo) GetClient(context.Context, uint, uint) (*models.Client, error) {
	return nil, errFakeUnused
}

func (f *fakeRepo) GetOrCreateClient(context.Context, uint, string, string, string) (*models.Client, error) {
	return nil, errFakeUnused
}

func (f *fakeRepo) GetWeeklyHours(context.Context, uint) (scheduling.WeeklyHours, error) {
	return f.hours, nil
}

func overlapping(pool []scheduling.TimeInterval, from, to time.Time) []scheduling.TimeInterval {
	out := []scheduling.TimeInterval{}
	for _, iv := range pool {
		if iv.Start.Before(to) && iv.End.After(from) {
			out = append(out, iv)
		}
	}
	return out
}

func (f *fakeRepo) FindCommitmentsInRange(
	_ context.Context,
	_ uint,
	from time.Time,
	to time.Time,
	_ uint,
	_ uint,
) ([]scheduling.TimeInterval, error) {
	all := append([]scheduling.TimeInterval{}, f.commitments...)
	all = append(all, f.blocks...)
	return overlapping(all, from, to), nil
}

func (f *fakeRepo) CreateBooking(context.Context, *models.Booking) error {
	return errFakeUnused
}

func (f *fakeRepo) GetBookingForProfessional(context.Context, uint, uint) (*models.Booking, error) {
	return nil, errFakeUnused
}

func (f *fakeRepo) UpdateBookingSchedule(context.Context, *models.Booking) error {
	return errFakeUnused
}

func (f *fakeRepo) UpdateBooking(context.Context, *models.Booking) error {
	return errFakeUnused
}

func (f *fakeRepo) ListBookingsForPeriod(context.Context, uint, time.Time, time.Time) ([]models.Booking, error) {
	return nil, errFakeUnused
}

func (f *fakeRepo) CreateBlock(context.Context, *models.BlockedTime) error {
	return errFakeUnused
}

func (f *fakeRepo) GetBlockForProfessional(context.Context, uint, uint) (*models.BlockedTime, error) {
	return nil, errFakeUnused
}

func (f *fakeRepo) UpdateBlockSchedule(context.Context, *models.BlockedTime) error {
	return errFakeUnused
}

func (f *fakeRepo) DeleteBlock(context.Context, uint, uint) error {
	return errFakeUnused
}

func (f *fakeRepo) ListBlocksInRange(
	_ context.Context,
	_ uint,
	from time.Time,
	to time.Time,
) ([]scheduling.TimeInterval, error) {
	return overlapping(f.blocks, from, to), nil
}

func (f *fakeRepo) GetLastMinuteSettings(context.Context, uint) (*models.LastMinuteSettings, error) {
	return f.settings, nil
}

func (f *fakeRepo) GetLastMinuteServiceRule(context.Context, uint, uint) (*models.LastMinuteServiceRule, error) {
	return f.rule, nil
}

var _ scheduling.Repository = (*fakeRepo)(nil)
