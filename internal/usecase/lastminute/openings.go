package lastminute

import (
	"context"
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/money"
	booking "github.com/StudioBelezaApp/salon-scheduler/internal/usecase/booking"
)

// Opening é um slot livre elegível para oferta last-minute. Valor
// efêmero: recomputado a cada consulta, nunca persistido.
type Opening struct {
	ProfessionalID uint `json:"professional_id"`
	OfferingID     uint `json:"offering_id"`

	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`

	Tier        Tier        `json:"tier"`
	DiscountPct int         `json:"discount_pct"`
	PriceCents  money.Cents `json:"price_cents"`
}

type ListOpenings struct {
	availability *booking.GetAvailability
	engine       *Engine
}

func NewListOpenings(
	availability *booking.GetAvailability,
	engine *Engine,
) *ListOpenings {
	return &ListOpenings{
		availability: availability,
		engine:       engine,
	}
}

type ListOpeningsInput struct {
	SalonID        uint
	ProfessionalID uint
	OfferingID     uint
	Date           time.Time // dia local (zona do salão)
	Now            time.Time
}

// Execute varre os horários livres do dia e classifica cada um;
// devolve só os elegíveis, já com tier e preço com desconto.
func (uc *ListOpenings) Execute(
	ctx context.Context,
	in ListOpeningsInput,
) ([]Opening, error) {

	slots, err := uc.availability.Execute(ctx, scheduling.AvailabilityInput{
		SalonID:        in.SalonID,
		ProfessionalID: in.ProfessionalID,
		OfferingID:     in.OfferingID,
		Date:           in.Date,
	})
	if err != nil {
		return nil, err
	}

	openings := []Opening{}
	for _, slot := range slots {
		cl, err := uc.engine.Classify(ctx, ClassifyInput{
			SalonID:        in.SalonID,
			ProfessionalID: in.ProfessionalID,
			OfferingID:     in.OfferingID,
			OpeningStart:   slot.StartAt,
			Now:            in.Now,
		})
		if err != nil {
			return nil, err
		}
		if !cl.Eligible {
			continue
		}

		openings = append(openings, Opening{
			ProfessionalID: in.ProfessionalID,
			OfferingID:     in.OfferingID,
			StartAt:        cl.StartAt,
			EndAt:          cl.EndAt,
			Tier:           cl.Tier,
			DiscountPct:    cl.DiscountPct,
			PriceCents:     cl.PriceCents,
		})
	}

	return openings, nil
}
