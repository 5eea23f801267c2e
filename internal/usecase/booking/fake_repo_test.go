package booking

import (
	"context"
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

// Repositório em memória para os testes de use case. Implementa o
// mesmo contrato do adaptador GORM, inclusive o filtro de status na
// consulta de compromissos.
type fakeRepo struct {
	salons    map[uint]*models.Salon
	offerings map[uint]*models.ServiceOffering
	clients   map[uint]*models.Client
	hours     map[uint]scheduling.WeeklyHours

	bookings map[uint]*models.Booking
	blocks   map[uint]*models.BlockedTime

	settings map[uint]*models.LastMinuteSettings
	rules    map[uint]map[uint]*models.LastMinuteServiceRule

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:    map[uint]*models.Salon{},
		offerings: map[uint]*models.ServiceOffering{},
		clients:   map[uint]*models.Client{},
		hours:     map[uint]scheduling.WeeklyHours{},
		bookings:  map[uint]*models.Booking{},
		blocks:    map[uint]*models.BlockedTime{},
		settings:  map[uint]*models.LastMinuteSettings{},
		rules:     map[uint]map[uint]*models.LastMinuteServiceRule{},
		nextID:    1,
	}
}

func (f *fakeRepo) id() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	s, ok := f.salons[id]
	if !ok {
		return nil, httperr.ErrBusiness("not_found")
	}
	return s, nil
}

func (f *fakeRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	for _, s := range f.salons {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, httperr.ErrBusiness("not_found")
}

func (f *fakeRepo) GetOffering(_ context.Context, salonID, offeringID uint) (*models.ServiceOffering, error) {
	o, ok := f.offerings[offeringID]
	if !ok || o.SalonID != salonID {
		return nil, httperr.ErrBusiness("not_found")
	}
	return o, nil
}

func (f *fakeRepo) GetClient(_ context.Context, salonID, clientID uint) (*models.Client, error) {
	c, ok := f.clients[clientID]
	if !ok || c.SalonID != salonID {
		return nil, httperr.ErrBusiness("not_found")
	}
	return c, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.SalonID == salonID && c.Phone == phone {
			return c, nil
		}
	}
	c := &models.Client{ID: f.id(), SalonID: salonID, Name: name, Phone: phone, Email: email}
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeRepo) GetWeeklyHours(_ context.Context, professionalID uint) (scheduling.WeeklyHours, error) {
	h, ok := f.hours[professionalID]
	if !ok {
		return scheduling.WeeklyHours{}, nil
	}
	return h, nil
}

func (f *fakeRepo) FindCommitmentsInRange(
	_ context.Context,
	professionalID uint,
	from time.Time,
	to time.Time,
	excludeBookingID uint,
	excludeBlockID uint,
) ([]scheduling.TimeInterval, error) {

	var out []scheduling.TimeInterval

	active := map[string]bool{}
	for _, s := range scheduling.ActiveStatuses() {
		active[s] = true
	}

	for _, b := range f.bookings {
		if b.ProfessionalID != professionalID || b.ID == excludeBookingID {
			continue
		}
		if !active[b.Status] {
			continue
		}
		if b.ScheduledStart.Before(to) && b.EndsAt.After(from) {
			out = append(out, scheduling.TimeInterval{Start: b.ScheduledStart, End: b.EndsAt})
		}
	}

	for _, blk := range f.blocks {
		if blk.ProfessionalID != professionalID || blk.ID == excludeBlockID {
			continue
		}
		if blk.StartAt.Before(to) && blk.EndAt.After(from) {
			out = append(out, scheduling.TimeInterval{Start: blk.StartAt, End: blk.EndAt})
		}
	}

	return out, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	b.ID = f.id()
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) GetBookingForProfessional(_ context.Context, bookingID, professionalID uint) (*models.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok || b.ProfessionalID != professionalID {
		return nil, httperr.ErrBusiness("not_found")
	}
	return b, nil
}

func (f *fakeRepo) UpdateBookingSchedule(_ context.Context, b *models.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) ListBookingsForPeriod(_ context.Context, professionalID uint, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProfessionalID != professionalID {
			continue
		}
		if !b.ScheduledStart.Before(start) && b.ScheduledStart.Before(end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateBlock(_ context.Context, blk *models.BlockedTime) error {
	blk.ID = f.id()
	f.blocks[blk.ID] = blk
	return nil
}

func (f *fakeRepo) GetBlockForProfessional(_ context.Context, blockID, professionalID uint) (*models.BlockedTime, error) {
	blk, ok := f.blocks[blockID]
	if !ok || blk.ProfessionalID != professionalID {
		return nil, httperr.ErrBusiness("not_found")
	}
	return blk, nil
}

func (f *fakeRepo) UpdateBlockSchedule(_ context.Context, blk *models.BlockedTime) error {
	f.blocks[blk.ID] = blk
	return nil
}

func (f *fakeRepo) DeleteBlock(_ context.Context, blockID, professionalID uint) error {
	delete(f.blocks, blockID)
	return nil
}

func (f *fakeRepo) ListBlocksInRange(_ context.Context, professionalID uint, from, to time.Time) ([]scheduling.TimeInterval, error) {
	var out []scheduling.TimeInterval
	for _, blk := range f.blocks {
		if blk.ProfessionalID != professionalID {
			continue
		}
		if blk.StartAt.Before(to) && blk.EndAt.After(from) {
			out = append(out, scheduling.TimeInterval{Start: blk.StartAt, End: blk.EndAt})
		}
	}
	return out, nil
}

func (f *fakeRepo) GetLastMinuteSettings(_ context.Context, professionalID uint) (*models.LastMinuteSettings, error) {
	return f.settings[professionalID], nil
}

func (f *fakeRepo) GetLastMinuteServiceRule(_ context.Context, professionalID, offeringID uint) (*models.LastMinuteServiceRule, error) {
	byOffering, ok := f.rules[professionalID]
	if !ok {
		return nil, nil
	}
	return byOffering[offeringID], nil
}

var _ scheduling.Repository = (*fakeRepo)(nil)
