package booking

import (
	"context"
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/audit"
	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/notification"
)

// ======================================================
// INPUT
// ======================================================

type RescheduleBookingInput struct {
	SalonID        uint
	ProfessionalID uint
	BookingID      uint

	// nil = mantém o valor atual.
	NewStart           *string // RFC 3339
	NewDurationMinutes *int

	AllowOutsideHours bool
}

// ======================================================
// USE CASE
// ======================================================

type RescheduleBooking struct {
	repo     scheduling.Repository
	locker   Locker
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewRescheduleBooking(
	repo scheduling.Repository,
	locker Locker,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Booking + estado
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForProfessional(ctx, in.BookingID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	if err := scheduling.CanReschedule(scheduling.Status(b.Status)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Novo intervalo
	// --------------------------------------------------
	start := b.ScheduledStart
	if in.NewStart != nil {
		parsed, err := time.Parse(time.RFC3339, *in.NewStart)
		if err != nil {
			return nil, httperr.ErrBusiness("validation_error")
		}
		start = parsed.UTC()
	}

	total := scheduling.ResolveTotalDuration(in.NewDurationMinutes, b.TotalDurationMinutes)
	interval := scheduling.IntervalFrom(start, total+b.BufferMinutes)

	// --------------------------------------------------
	// 3. Working hours
	// --------------------------------------------------
	if !in.AllowOutsideHours {
		hours, err := uc.repo.GetWeeklyHours(ctx, in.ProfessionalID)
		if err != nil {
			return nil, err
		}
		if err := scheduling.IsWithinWorkingHours(interval, hours, salon.Timezone); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4. Lock + conflito, excluindo o próprio booking
	// --------------------------------------------------
	release, err := uc.locker.AcquireBookingLock(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	defer release()

	window := scheduling.NeighborhoodWindow(start, total+b.BufferMinutes)
	existing, err := uc.repo.FindCommitmentsInRange(
		ctx,
		in.ProfessionalID,
		window.Start,
		window.End,
		b.ID,
		0,
	)
	if err != nil {
		return nil, err
	}

	if scheduling.HasConflict(interval, existing) {
		return nil, httperr.ErrBusiness("time_slot_unavailable")
	}

	// --------------------------------------------------
	// 5. Persistência
	// --------------------------------------------------
	b.ScheduledStart = interval.Start
	b.EndsAt = interval.End
	b.TotalDurationMinutes = total

	if err := uc.repo.UpdateBookingSchedule(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Notificação + auditoria
	// --------------------------------------------------
	uc.notifier.Dispatch(notification.Event{
		Type:      "booking_rescheduled",
		SalonID:   in.SalonID,
		BookingID: &b.ID,
		ClientID:  &b.ClientID,
		Payload: map[string]any{
			"scheduled_start": b.ScheduledStart,
			"ends_at":         b.EndsAt,
		},
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ProfessionalID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// Resize muda só a duração, mantendo o início.
func (uc *RescheduleBooking) Resize(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	bookingID uint,
	newDurationMinutes int,
	allowOutsideHours bool,
) (*models.Booking, error) {

	return uc.Execute(ctx, RescheduleBookingInput{
		SalonID:            salonID,
		ProfessionalID:     professionalID,
		BookingID:          bookingID,
		NewDurationMinutes: &newDurationMinutes,
		AllowOutsideHours:  allowOutsideHours,
	})
}
