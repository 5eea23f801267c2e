package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// Leitura idempotente é retentada uma vez antes de desistir
// (conexão caiu, failover etc.).
func retryRead(fn func() error) error {
	err := fn()
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return fn()
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Offering
// --------------------------------------------------

func (r *BookingGormRepository) GetOffering(
	ctx context.Context,
	salonID uint,
	offeringID uint,
) (*models.ServiceOffering, error) {

	var offering models.ServiceOffering
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", offeringID, salonID).
		First(&offering).Error; err != nil {
		return nil, err
	}
	return &offering, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetClient(
	ctx context.Context,
	salonID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", clientID, salonID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *BookingGormRepository) GetWeeklyHours(
	ctx context.Context,
	professionalID uint,
) (scheduling.WeeklyHours, error) {

	var rows []models.WorkingHours
	err := retryRead(func() error {
		return r.db.WithContext(ctx).
			Where("professional_id = ?", professionalID).
			Order("weekday ASC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	hours := make(scheduling.WeeklyHours, len(rows))
	for _, row := range rows {
		hours[row.Weekday] = scheduling.DayWindow{
			Active:    row.Active,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		}
	}

	return hours, nil
}

// --------------------------------------------------
// Commitments (conflict)
// --------------------------------------------------

// FindCommitmentsInRange devolve os intervalos ocupados (bookings
// ativos com buffer + bloqueios) dentro da janela de vizinhança.
// Cancelados saem aqui pelo predicado de status.
func (r *BookingGormRepository) FindCommitmentsInRange(
	ctx context.Context,
	professionalID uint,
	from time.Time,
	to time.Time,
	excludeBookingID uint,
	excludeBlockID uint,
) ([]scheduling.TimeInterval, error) {

	var intervals []scheduling.TimeInterval

	err := retryRead(func() error {
		intervals = intervals[:0]

		var bookings []models.Booking
		q := r.db.WithContext(ctx).
			Select("scheduled_start", "ends_at").
			Where(
				"professional_id = ? AND status IN ? AND scheduled_start < ? AND ends_at > ?",
				professionalID, scheduling.ActiveStatuses(), to, from,
			)
		if excludeBookingID != 0 {
			q = q.Where("id <> ?", excludeBookingID)
		}
		if err := q.Order("scheduled_start ASC").Find(&bookings).Error; err != nil {
			return err
		}

		for _, b := range bookings {
			intervals = append(intervals, scheduling.TimeInterval{
				Start: b.ScheduledStart,
				End:   b.EndsAt,
			})
		}

		var blocks []models.BlockedTime
		bq := r.db.WithContext(ctx).
			Select("start_at", "end_at").
			Where(
				"professional_id = ? AND start_at < ? AND end_at > ?",
				professionalID, to, from,
			)
		if excludeBlockID != 0 {
			bq = bq.Where("id <> ?", excludeBlockID)
		}
		if err := bq.Order("start_at ASC").Find(&blocks).Error; err != nil {
			return err
		}

		for _, blk := range blocks {
			intervals = append(intervals, scheduling.TimeInterval{
				Start: blk.StartAt,
				End:   blk.EndAt,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return intervals, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// CreateBooking persiste booking + itens numa transação única, com
// lock da linha-vizinha via SELECT FOR UPDATE. Corrida perdida na
// exclusion constraint vira time_slot_unavailable — semanticamente é
// a mesma coisa.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"professional_id = ? AND status IN ? AND scheduled_start < ? AND ends_at > ?",
				b.ProfessionalID, scheduling.ActiveStatuses(), b.EndsAt, b.ScheduledStart,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_slot_unavailable")
		}

		// Itens vão junto pela associação — nunca meio escritos.
		return tx.Create(b).Error
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness("time_slot_unavailable")
		}
		return err
	}

	return nil
}

func (r *BookingGormRepository) GetBookingForProfessional(
	ctx context.Context,
	bookingID uint,
	professionalID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND professional_id = ?", bookingID, professionalID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBookingSchedule(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"scheduled_start":        b.ScheduledStart,
			"ends_at":                b.EndsAt,
			"total_duration_minutes": b.TotalDurationMinutes,
			"buffer_minutes":         b.BufferMinutes,
		}).Error

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusiness("time_slot_unavailable")
		}
		return err
	}

	return nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit("Items").Save(b).Error
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items").
		Where(
			"professional_id = ? AND scheduled_start >= ? AND scheduled_start < ?",
			professionalID, start, end,
		).
		Order("scheduled_start ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Blocked time
// --------------------------------------------------

func (r *BookingGormRepository) CreateBlock(
	ctx context.Context,
	blk *models.BlockedTime,
) error {
	return r.db.WithContext(ctx).Create(blk).Error
}

func (r *BookingGormRepository) GetBlockForProfessional(
	ctx context.Context,
	blockID uint,
	professionalID uint,
) (*models.BlockedTime, error) {

	var blk models.BlockedTime
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", blockID, professionalID).
		First(&blk).Error; err != nil {
		return nil, err
	}

	return &blk, nil
}

func (r *BookingGormRepository) UpdateBlockSchedule(
	ctx context.Context,
	blk *models.BlockedTime,
) error {
	return r.db.WithContext(ctx).
		Model(&models.BlockedTime{}).
		Where("id = ?", blk.ID).
		Updates(map[string]any{
			"start_at": blk.StartAt,
			"end_at":   blk.EndAt,
		}).Error
}

func (r *BookingGormRepository) DeleteBlock(
	ctx context.Context,
	blockID uint,
	professionalID uint,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", blockID, professionalID).
		Delete(&models.BlockedTime{}).Error
}

func (r *BookingGormRepository) ListBlocksInRange(
	ctx context.Context,
	professionalID uint,
	from time.Time,
	to time.Time,
) ([]scheduling.TimeInterval, error) {

	var intervals []scheduling.TimeInterval

	err := retryRead(func() error {
		intervals = intervals[:0]

		var blocks []models.BlockedTime
		if err := r.db.WithContext(ctx).
			Select("start_at", "end_at").
			Where(
				"professional_id = ? AND start_at < ? AND end_at > ?",
				professionalID, to, from,
			).
			Order("start_at ASC").
			Find(&blocks).Error; err != nil {
			return err
		}

		for _, blk := range blocks {
			intervals = append(intervals, scheduling.TimeInterval{
				Start: blk.StartAt,
				End:   blk.EndAt,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return intervals, nil
}

// --------------------------------------------------
// Last-minute
// --------------------------------------------------

func (r *BookingGormRepository) GetLastMinuteSettings(
	ctx context.Context,
	professionalID uint,
) (*models.LastMinuteSettings, error) {

	var settings models.LastMinuteSettings
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		First(&settings).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

func (r *BookingGormRepository) GetLastMinuteServiceRule(
	ctx context.Context,
	professionalID uint,
	offeringID uint,
) (*models.LastMinuteServiceRule, error) {

	var rule models.LastMinuteServiceRule
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND service_offering_id = ?", professionalID, offeringID).
		First(&rule).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rule, nil
}

// Compile-time check
var _ scheduling.Repository = (*BookingGormRepository)(nil)
