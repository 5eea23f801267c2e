package scheduling

import (
	"context"
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Salon / Professional --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Offering --------
	GetOffering(
		ctx context.Context,
		salonID uint,
		offeringID uint,
	) (*models.ServiceOffering, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		salonID uint,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Working hours --------
	GetWeeklyHours(
		ctx context.Context,
		professionalID uint,
	) (WeeklyHours, error)

	// -------- Commitments (conflict) --------
	// Bookings ativos (com buffer) + bloqueios dentro da janela.
	// Cancelados já saem aqui, pela query — nunca dentro do predicado.
	// excludeBookingID / excludeBlockID tiram a própria entidade da
	// checagem (booking nunca conflita consigo mesmo).
	FindCommitmentsInRange(
		ctx context.Context,
		professionalID uint,
		from time.Time,
		to time.Time,
		excludeBookingID uint,
		excludeBlockID uint,
	) ([]TimeInterval, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingForProfessional(
		ctx context.Context,
		bookingID uint,
		professionalID uint,
	) (*models.Booking, error)

	UpdateBookingSchedule(
		ctx context.Context,
		b *models.Booking,
	) error

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Blocked time --------
	CreateBlock(
		ctx context.Context,
		blk *models.BlockedTime,
	) error

	GetBlockForProfessional(
		ctx context.Context,
		blockID uint,
		professionalID uint,
	) (*models.BlockedTime, error)

	UpdateBlockSchedule(
		ctx context.Context,
		blk *models.BlockedTime,
	) error

	DeleteBlock(
		ctx context.Context,
		blockID uint,
		professionalID uint,
	) error

	ListBlocksInRange(
		ctx context.Context,
		professionalID uint,
		from time.Time,
		to time.Time,
	) ([]TimeInterval, error)

	// -------- Last-minute --------
	// Ausência de configuração/regra volta (nil, nil).
	GetLastMinuteSettings(
		ctx context.Context,
		professionalID uint,
	) (*models.LastMinuteSettings, error)

	GetLastMinuteServiceRule(
		ctx context.Context,
		professionalID uint,
		offeringID uint,
	) (*models.LastMinuteServiceRule, error)
}
