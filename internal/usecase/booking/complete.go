package booking

import (
	"context"

	"github.com/StudioBelezaApp/salon-scheduler/internal/audit"
	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/timezone"
)

type CompleteBooking struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewCompleteBooking(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteBooking) Execute(
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

	if err := scheduling.Complete(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &professionalID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
