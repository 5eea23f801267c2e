package booking

import (
	"context"
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

type GetAvailability struct {
	repo scheduling.Repository
}

func NewGetAvailability(repo scheduling.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute varre o dia do profissional e devolve os horários livres
// para o serviço pedido: janela de expediente fatiada na grade da
// duração, menos os compromissos existentes.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in scheduling.AvailabilityInput,
) ([]scheduling.TimeSlot, error) {

	offering, err := uc.repo.GetOffering(ctx, in.SalonID, in.OfferingID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_offered")
	}

	hours, err := uc.repo.GetWeeklyHours(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	day, ok := hours[int(in.Date.Weekday())]
	if !ok || !day.Active {
		return []scheduling.TimeSlot{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) (time.Time, error) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, httperr.ErrBusiness("misconfigured_hours")
		}
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), nil
	}

	dayStart, err := parseHM(day.StartTime)
	if err != nil {
		return nil, err
	}
	dayEnd, err := parseHM(day.EndTime)
	if err != nil {
		return nil, err
	}
	if !dayEnd.After(dayStart) {
		return nil, httperr.ErrBusiness("misconfigured_hours")
	}

	commitments, err := uc.repo.FindCommitmentsInRange(
		ctx,
		in.ProfessionalID,
		dayStart,
		dayEnd,
		0,
		0,
	)
	if err != nil {
		return nil, err
	}

	duration := scheduling.SnapToGrid(offering.DurationFor(models.LocationSalon))
	if duration < scheduling.MinDurationMinutes {
		duration = scheduling.MinDurationMinutes
	}
	step := time.Duration(duration) * time.Minute

	var slots []scheduling.TimeSlot
	for cur := dayStart; !cur.Add(step).After(dayEnd); cur = cur.Add(step) {
		candidate := scheduling.TimeInterval{Start: cur, End: cur.Add(step)}

		if scheduling.HasConflict(candidate, commitments) {
			continue
		}

		slots = append(slots, scheduling.TimeSlot{
			StartAt: candidate.Start.UTC(),
			EndAt:   candidate.End.UTC(),
		})
	}

	return slots, nil
}
