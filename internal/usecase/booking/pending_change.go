package booking

import (
	"context"
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/audit"
	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

// Edição interativa de calendário (drag-move / drag-resize) nunca
// comita silenciosamente: o caller propõe, recebe a classificação e
// só então confirma. Nenhum estado de proposta vive no servidor —
// Propose e Confirm são chamadas independentes e ambas revalidam.

const (
	EntityBooking = "booking"
	EntityBlock   = "block"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ProposeChangeInput struct {
	SalonID        uint
	ProfessionalID uint

	EntityType string // booking | block
	EntityID   uint

	NewStart           *string // RFC 3339; nil = mantém
	NewDurationMinutes *int
}

type ConfirmChangeInput struct {
	ProposeChangeInput

	// Reconhecimento consciente de que o horário cai fora do
	// expediente. Conflito real de agenda nunca é sobreponível.
	AllowOutsideHours bool
}

type ChangeProposal struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Conflicts           []scheduling.TimeInterval `json:"conflicts"`
	OutsideWorkingHours bool                      `json:"outside_working_hours"`

	// CanConfirm = sem conflito de intervalo. Fora do expediente ainda
	// confirma, desde que o operador mande allow_outside_hours.
	CanConfirm bool `json:"can_confirm"`
}

type ChangeResult struct {
	Booking *models.Booking     `json:"booking,omitempty"`
	Block   *models.BlockedTime `json:"block,omitempty"`
}

// ======================================================
// WORKFLOW
// ======================================================

type PendingChange struct {
	repo       scheduling.Repository
	locker     Locker
	reschedule *RescheduleBooking
	audit      *audit.Dispatcher
}

func NewPendingChange(
	repo scheduling.Repository,
	locker Locker,
	reschedule *RescheduleBooking,
	audit *audit.Dispatcher,
) *PendingChange {
	return &PendingChange{
		repo:       repo,
		locker:     locker,
		reschedule: reschedule,
		audit:      audit,
	}
}

// ======================================================
// PROPOSE
// ======================================================

func (uc *PendingChange) Propose(
	ctx context.Context,
	in ProposeChangeInput,
) (*ChangeProposal, error) {

	switch in.EntityType {
	case EntityBooking:
		return uc.proposeBooking(ctx, in)
	case EntityBlock:
		return uc.proposeBlock(ctx, in)
	default:
		return nil, httperr.ErrBusiness("validation_error")
	}
}

func (uc *PendingChange) proposeBooking(
	ctx context.Context,
	in ProposeChangeInput,
) (*ChangeProposal, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForProfessional(ctx, in.EntityID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}
	if err := scheduling.CanReschedule(scheduling.Status(b.Status)); err != nil {
		return nil, err
	}

	interval, err := uc.candidateInterval(in, b.ScheduledStart, b.TotalDurationMinutes, b.BufferMinutes)
	if err != nil {
		return nil, err
	}

	conflicts, err := uc.conflictsFor(ctx, in.ProfessionalID, interval, b.ID, 0)
	if err != nil {
		return nil, err
	}

	proposal := &ChangeProposal{
		Start:      interval.Start,
		End:        interval.End,
		Conflicts:  conflicts,
		CanConfirm: len(conflicts) == 0,
	}

	// Fora do expediente não rejeita a proposta: vira flag para o passo
	// de confirmação exigir o override consciente do operador.
	hours, err := uc.repo.GetWeeklyHours(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if err := scheduling.IsWithinWorkingHours(interval, hours, salon.Timezone); err != nil {
		if httperr.IsBusiness(err, "outside_working_hours") {
			proposal.OutsideWorkingHours = true
		} else {
			return nil, err
		}
	}

	return proposal, nil
}

// Bloqueio pode ser colocado a qualquer hora: pula o expediente por
// completo, mas continua passando pela detecção de conflito.
func (uc *PendingChange) proposeBlock(
	ctx context.Context,
	in ProposeChangeInput,
) (*ChangeProposal, error) {

	blk, err := uc.repo.GetBlockForProfessional(ctx, in.EntityID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	interval, err := blockCandidateInterval(in, blk)
	if err != nil {
		return nil, err
	}

	conflicts, err := uc.conflictsFor(ctx, in.ProfessionalID, interval, 0, blk.ID)
	if err != nil {
		return nil, err
	}

	return &ChangeProposal{
		Start:      interval.Start,
		End:        interval.End,
		Conflicts:  conflicts,
		CanConfirm: len(conflicts) == 0,
	}, nil
}

// ======================================================
// CONFIRM
// ======================================================

func (uc *PendingChange) Confirm(
	ctx context.Context,
	in ConfirmChangeInput,
) (*ChangeResult, error) {

	switch in.EntityType {
	case EntityBooking:
		b, err := uc.reschedule.Execute(ctx, RescheduleBookingInput{
			SalonID:            in.SalonID,
			ProfessionalID:     in.ProfessionalID,
			BookingID:          in.EntityID,
			NewStart:           in.NewStart,
			NewDurationMinutes: in.NewDurationMinutes,
			AllowOutsideHours:  in.AllowOutsideHours,
		})
		if err != nil {
			return nil, err
		}
		return &ChangeResult{Booking: b}, nil

	case EntityBlock:
		return uc.confirmBlock(ctx, in)

	default:
		return nil, httperr.ErrBusiness("validation_error")
	}
}

func (uc *PendingChange) confirmBlock(
	ctx context.Context,
	in ConfirmChangeInput,
) (*ChangeResult, error) {

	blk, err := uc.repo.GetBlockForProfessional(ctx, in.EntityID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	interval, err := blockCandidateInterval(in.ProposeChangeInput, blk)
	if err != nil {
		return nil, err
	}

	release, err := uc.locker.AcquireBookingLock(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	defer release()

	conflicts, err := uc.conflictsFor(ctx, in.ProfessionalID, interval, 0, blk.ID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, httperr.ErrBusiness("time_slot_unavailable")
	}

	blk.StartAt = interval.Start
	blk.EndAt = interval.End

	if err := uc.repo.UpdateBlockSchedule(ctx, blk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ProfessionalID,
		Action:   "block_rescheduled",
		Entity:   "block",
		EntityID: &blk.ID,
	})

	return &ChangeResult{Block: blk}, nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *PendingChange) candidateInterval(
	in ProposeChangeInput,
	currentStart time.Time,
	currentDuration int,
	bufferMinutes int,
) (scheduling.TimeInterval, error) {

	start := currentStart
	if in.NewStart != nil {
		parsed, err := time.Parse(time.RFC3339, *in.NewStart)
		if err != nil {
			return scheduling.TimeInterval{}, httperr.ErrBusiness("validation_error")
		}
		start = parsed.UTC()
	}

	total := scheduling.ResolveTotalDuration(in.NewDurationMinutes, currentDuration)
	return scheduling.IntervalFrom(start, total+bufferMinutes), nil
}

// Bloqueio é intervalo arbitrário: não passa pela grade nem pelos
// limites de duração de serviço. Mover preserva o comprimento exato;
// nova duração entra como veio.
func blockCandidateInterval(
	in ProposeChangeInput,
	blk *models.BlockedTime,
) (scheduling.TimeInterval, error) {

	start := blk.StartAt
	if in.NewStart != nil {
		parsed, err := time.Parse(time.RFC3339, *in.NewStart)
		if err != nil {
			return scheduling.TimeInterval{}, httperr.ErrBusiness("validation_error")
		}
		start = parsed.UTC()
	}

	length := blk.EndAt.Sub(blk.StartAt)
	if in.NewDurationMinutes != nil {
		if *in.NewDurationMinutes <= 0 {
			return scheduling.TimeInterval{}, httperr.ErrBusiness("validation_error")
		}
		length = time.Duration(*in.NewDurationMinutes) * time.Minute
	}

	return scheduling.NewTimeInterval(start, start.Add(length))
}

func (uc *PendingChange) conflictsFor(
	ctx context.Context,
	professionalID uint,
	interval scheduling.TimeInterval,
	excludeBookingID uint,
	excludeBlockID uint,
) ([]scheduling.TimeInterval, error) {

	window := scheduling.NeighborhoodWindow(interval.Start, interval.Minutes())
	existing, err := uc.repo.FindCommitmentsInRange(
		ctx,
		professionalID,
		window.Start,
		window.End,
		excludeBookingID,
		excludeBlockID,
	)
	if err != nil {
		return nil, err
	}

	return scheduling.FindConflicts(interval, existing), nil
}
