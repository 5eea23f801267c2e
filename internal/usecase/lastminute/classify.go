package lastminute

import (
	"context"
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/money"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/timezone"
)

// Tier de elegibilidade last-minute: mesmo dia-calendário ou dentro
// de 24 horas, sempre na zona do profissional.
type Tier string

const (
	TierSameDay   Tier = "same_day"
	TierWithin24h Tier = "within_24h"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ClassifyInput struct {
	SalonID        uint
	ProfessionalID uint
	OfferingID     uint

	OpeningStart time.Time

	// "Agora" entra como parâmetro explícito: o tier muda conforme o
	// tempo passa, então o resultado nunca pode ser cacheado por
	// profissional/serviço.
	Now time.Time
}

type Classification struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`

	Tier        Tier        `json:"tier,omitempty"`
	DiscountPct int         `json:"discount_pct"`
	PriceCents  money.Cents `json:"price_cents,omitempty"`

	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

func ineligible(reason string, start, end time.Time) *Classification {
	return &Classification{
		Eligible: false,
		Reason:   reason,
		StartAt:  start,
		EndAt:    end,
	}
}

// ======================================================
// ENGINE
// ======================================================

type Engine struct {
	repo scheduling.Repository
}

func NewEngine(repo scheduling.Repository) *Engine {
	return &Engine{repo: repo}
}

func (e *Engine) Classify(
	ctx context.Context,
	in ClassifyInput,
) (*Classification, error) {

	// --------------------------------------------------
	// 1. Configuração habilitada?
	// --------------------------------------------------
	settings, err := e.repo.GetLastMinuteSettings(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if settings == nil || !settings.Enabled {
		return ineligible("disabled", in.OpeningStart, in.OpeningStart), nil
	}

	salon, err := e.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	loc, err := timezone.Location(salon.Timezone)
	if err != nil {
		return nil, err
	}

	offering, err := e.repo.GetOffering(ctx, in.SalonID, in.OfferingID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_offered")
	}

	duration := scheduling.SnapToGrid(offering.DurationFor(models.LocationSalon))
	if duration < scheduling.MinDurationMinutes {
		duration = scheduling.MinDurationMinutes
	}
	interval := scheduling.IntervalFrom(in.OpeningStart, duration)

	// --------------------------------------------------
	// 2. Weekday desabilitado?
	// --------------------------------------------------
	localStart := in.OpeningStart.In(loc)
	if settings.WeekdayDisabled(localStart.Weekday()) {
		return ineligible("weekday_disabled", interval.Start, interval.End), nil
	}

	// --------------------------------------------------
	// 3. Blackout (bloqueios de agenda)
	// --------------------------------------------------
	window := scheduling.NeighborhoodWindow(interval.Start, duration)
	blocks, err := e.repo.ListBlocksInRange(
		ctx,
		in.ProfessionalID,
		window.Start,
		window.End,
	)
	if err != nil {
		return nil, err
	}
	if scheduling.HasConflict(interval, blocks) {
		return ineligible("blackout", interval.Start, interval.End), nil
	}

	// --------------------------------------------------
	// 4. Regra por serviço
	// --------------------------------------------------
	rule, err := e.repo.GetLastMinuteServiceRule(ctx, in.ProfessionalID, in.OfferingID)
	if err != nil {
		return nil, err
	}
	if rule != nil && !rule.Enabled {
		return ineligible("service_disabled", interval.Start, interval.End), nil
	}

	// --------------------------------------------------
	// 5. Tier (mesmo dia / 24h), na zona do profissional
	// --------------------------------------------------
	if !in.OpeningStart.After(in.Now) {
		return ineligible("past", interval.Start, interval.End), nil
	}

	localNow := in.Now.In(loc)

	var tier Tier
	switch {
	case sameCalendarDay(localStart, localNow):
		tier = TierSameDay
	case in.OpeningStart.Sub(in.Now) <= 24*time.Hour:
		tier = TierWithin24h
	default:
		return ineligible("outside_window", interval.Start, interval.End), nil
	}

	// --------------------------------------------------
	// 6. Desconto do tier
	// --------------------------------------------------
	pct := 0
	if settings.DiscountsEnabled {
		if tier == TierSameDay {
			pct = settings.SameDayPct
		} else {
			pct = settings.Within24hPct
		}
	}

	// --------------------------------------------------
	// 7. Piso de preço: rejeita, nunca clampa o desconto —
	//    desconto clampado mentiria o percentual anunciado.
	// --------------------------------------------------
	price := money.Cents(offering.PriceCents).ApplyDiscountPct(pct)

	if floor, ok := priceFloor(settings, rule); ok && price < floor {
		return ineligible("below_price_floor", interval.Start, interval.End), nil
	}

	return &Classification{
		Eligible:    true,
		Tier:        tier,
		DiscountPct: pct,
		PriceCents:  price,
		StartAt:     interval.Start,
		EndAt:       interval.End,
	}, nil
}

// ======================================================
// HELPERS
// ======================================================

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// priceFloor: o piso efetivo é o maior entre o global e o do serviço.
func priceFloor(
	settings *models.LastMinuteSettings,
	rule *models.LastMinuteServiceRule,
) (money.Cents, bool) {

	var floor money.Cents
	found := false

	if settings.MinPriceCents != nil {
		floor = money.Cents(*settings.MinPriceCents)
		found = true
	}
	if rule != nil && rule.MinPriceCents != nil {
		c := money.Cents(*rule.MinPriceCents)
		if !found || c > floor {
			floor = c
		}
		found = true
	}

	return floor, found
}
