package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/StudioBelezaApp/salon-scheduler/internal/audit"
	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/notification"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	SalonID        uint
	ProfessionalID uint

	// Cliente já conhecido (ID) ou identificado por nome/telefone
	// (fluxo público, get-or-create).
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	ScheduledFor string // RFC 3339
	ServiceIDs   []uint
	LocationType string

	BufferMinutes        *int
	TotalDurationMinutes *int

	Notes string

	// Agendamento iniciado pelo próprio profissional: nasce aceito e
	// pode, com override explícito, cair fora do expediente.
	ProfessionalInitiated bool
	AllowOutsideHours     bool

	// Antecedência mínima do salão (fluxo público).
	EnforceMinAdvance bool

	// Instante da requisição, injetado pelo handler. Zero cai no
	// relógio de parede.
	Now time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     scheduling.Repository
	locker   Locker
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewCreateBooking(
	repo scheduling.Repository,
	locker Locker,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Validação de entrada
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("validation_error")
	}
	if in.LocationType == "" {
		in.LocationType = models.LocationSalon
	}
	if in.LocationType != models.LocationSalon && in.LocationType != models.LocationMobile {
		return nil, httperr.ErrBusiness("validation_error")
	}
	if in.ClientID == 0 && (in.ClientName == "" || in.ClientPhone == "") {
		return nil, httperr.ErrBusiness("validation_error")
	}

	start, err := time.Parse(time.RFC3339, in.ScheduledFor)
	if err != nil {
		return nil, httperr.ErrBusiness("validation_error")
	}
	start = start.UTC()

	// --------------------------------------------------
	// 2. Salão e timezone
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Antecedência mínima (fluxo público)
	// --------------------------------------------------
	if in.EnforceMinAdvance {
		minAdvance := salon.MinAdvanceMinutes
		if minAdvance <= 0 {
			minAdvance = 120
		}

		now := in.Now
		if now.IsZero() {
			now = time.Now().UTC()
		}
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	// --------------------------------------------------
	// 4. Serviços → itens, duração e preço
	// --------------------------------------------------
	items, itemsTotal, priceCents, err := uc.resolveItems(ctx, in)
	if err != nil {
		return nil, err
	}

	total := scheduling.ResolveTotalDuration(in.TotalDurationMinutes, itemsTotal)

	buffer := 0
	if in.BufferMinutes != nil {
		buffer = scheduling.ClampBuffer(*in.BufferMinutes)
	}

	interval := scheduling.IntervalFrom(start, total+buffer)

	// --------------------------------------------------
	// 5. Working hours (pulado só com override explícito
	//    de agendamento do próprio profissional)
	// --------------------------------------------------
	if !(in.ProfessionalInitiated && in.AllowOutsideHours) {
		hours, err := uc.repo.GetWeeklyHours(ctx, in.ProfessionalID)
		if err != nil {
			return nil, err
		}
		if err := scheduling.IsWithinWorkingHours(interval, hours, salon.Timezone); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 6. Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Lock por profissional + conflito de horário
	// --------------------------------------------------
	release, err := uc.locker.AcquireBookingLock(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	defer release()

	window := scheduling.NeighborhoodWindow(start, total+buffer)
	existing, err := uc.repo.FindCommitmentsInRange(
		ctx,
		in.ProfessionalID,
		window.Start,
		window.End,
		0,
		0,
	)
	if err != nil {
		return nil, err
	}

	if scheduling.HasConflict(interval, existing) {
		return nil, httperr.ErrBusiness("time_slot_unavailable")
	}

	// --------------------------------------------------
	// 8. Persistência (booking + itens, atômico)
	// --------------------------------------------------
	b := &models.Booking{
		Reference:            uuid.NewString(),
		SalonID:              in.SalonID,
		ProfessionalID:       in.ProfessionalID,
		ClientID:             client.ID,
		ScheduledStart:       interval.Start,
		EndsAt:               interval.End,
		TotalDurationMinutes: total,
		BufferMinutes:        buffer,
		LocationType:         in.LocationType,
		Status:               string(scheduling.InitialStatus(in.ProfessionalInitiated)),
		PriceCents:           priceCents,
		Items:                items,
		Notes:                in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9. Notificação (best-effort) + auditoria
	// --------------------------------------------------
	uc.notifier.Dispatch(notification.Event{
		Type:      "booking_created",
		SalonID:   in.SalonID,
		BookingID: &b.ID,
		ClientID:  &client.ID,
		Payload: map[string]any{
			"scheduled_start": b.ScheduledStart,
			"status":          b.Status,
		},
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   userIDForAudit(in),
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *CreateBooking) resolveItems(
	ctx context.Context,
	in CreateBookingInput,
) ([]models.BookingItem, int, int64, error) {

	var items []models.BookingItem
	var totalMinutes int
	var priceCents int64

	for _, serviceID := range in.ServiceIDs {
		offering, err := uc.repo.GetOffering(ctx, in.SalonID, serviceID)
		if err != nil {
			return nil, 0, 0, httperr.ErrBusiness("service_not_offered")
		}
		if !offering.OfferedAt(in.LocationType) {
			return nil, 0, 0, httperr.ErrBusiness("service_not_offered")
		}

		dur := scheduling.SnapToGrid(offering.DurationFor(in.LocationType))
		if dur < scheduling.MinDurationMinutes {
			dur = scheduling.MinDurationMinutes
		}

		items = append(items, models.BookingItem{
			ServiceOfferingID: offering.ID,
			Name:              offering.Name,
			DurationMinutes:   dur,
			PriceCents:        offering.PriceCents,
		})
		totalMinutes += dur
		priceCents += offering.PriceCents
	}

	return items, totalMinutes, priceCents, nil
}

func (uc *CreateBooking) resolveClient(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		client, err := uc.repo.GetClient(ctx, in.SalonID, in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("validation_error")
		}
		return client, nil
	}

	return uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
}

func userIDForAudit(in CreateBookingInput) *uint {
	if in.ProfessionalInitiated {
		id := in.ProfessionalID
		return &id
	}
	return nil
}
