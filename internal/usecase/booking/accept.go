package booking

import (
	"context"

	"github.com/StudioBelezaApp/salon-scheduler/internal/audit"
	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/notification"
)

type AcceptBooking struct {
	repo     scheduling.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewAcceptBooking(
	repo scheduling.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *AcceptBooking {
	return &AcceptBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

func (uc *AcceptBooking) Execute(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForProfessional(ctx, bookingID, professionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	if err := scheduling.Accept(b); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notification.Event{
		Type:      "booking_accepted",
		SalonID:   salonID,
		BookingID: &b.ID,
		ClientID:  &b.ClientID,
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &professionalID,
		Action:   "booking_accepted",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
