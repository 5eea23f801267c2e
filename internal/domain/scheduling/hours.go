package scheduling

import (
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/timezone"
)

// DayWindow é a janela de expediente de um dia da semana, em hora de
// parede do profissional ("15:04").
type DayWindow struct {
	Active    bool
	StartTime string
	EndTime   string
}

// WeeklyHours mapeia weekday (0 = domingo) → janela do dia.
type WeeklyHours map[int]DayWindow

// IsWithinWorkingHours valida se o intervalo cai inteiro dentro da
// janela de expediente do dia, na zona do profissional. Predicado
// puro: não conhece outros bookings e não muta nada.
//
// Regras:
//   - dia ausente ou desativado           → outside_working_hours
//   - janela não parseável ou end <= start → misconfigured_hours
//   - intervalo cruza a meia-noite local   → outside_working_hours
func IsWithinWorkingHours(interval TimeInterval, hours WeeklyHours, tz string) error {
	loc, err := timezone.Location(tz)
	if err != nil {
		return err
	}

	startLocal := interval.Start.In(loc)
	endLocal := interval.End.In(loc)

	day, ok := hours[int(startLocal.Weekday())]
	if !ok || !day.Active {
		return httperr.ErrBusiness("outside_working_hours")
	}

	windowStart, err1 := time.Parse("15:04", day.StartTime)
	windowEnd, err2 := time.Parse("15:04", day.EndTime)
	if err1 != nil || err2 != nil {
		return httperr.ErrBusiness("misconfigured_hours")
	}

	windowStartMin := windowStart.Hour()*60 + windowStart.Minute()
	windowEndMin := windowEnd.Hour()*60 + windowEnd.Minute()
	if windowEndMin <= windowStartMin {
		return httperr.ErrBusiness("misconfigured_hours")
	}

	// Atendimento cruzando a meia-noite não é suportado.
	sy, sm, sd := startLocal.Date()
	ey, em, ed := endLocal.Date()
	if sy != ey || sm != em || sd != ed {
		return httperr.ErrBusiness("outside_working_hours")
	}

	startMin := startLocal.Hour()*60 + startLocal.Minute()
	endMin := endLocal.Hour()*60 + endLocal.Minute()

	if startMin < windowStartMin || endMin > windowEndMin {
		return httperr.ErrBusiness("outside_working_hours")
	}

	return nil
}
