package booking

import (
	"context"

	"github.com/StudioBelezaApp/salon-scheduler/internal/audit"
	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/notification"
	"github.com/StudioBelezaApp/salon-scheduler/internal/timezone"
)

type CancelBooking struct {
	repo     scheduling.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewCancelBooking(
	repo scheduling.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	bookingID uint,
) (*models.Booking, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForProfessional(ctx, bookingID, professionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	now, err := timezone.NowIn(salon.Timezone)
	if err != nil {
		return nil, err
	}

	if err := scheduling.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notification.Event{
		Type:      "booking_cancelled",
		SalonID:   salonID,
		BookingID: &b.ID,
		ClientID:  &b.ClientID,
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &professionalID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
