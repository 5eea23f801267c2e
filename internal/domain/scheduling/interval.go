package scheduling

import (
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
)

// TimeInterval é um intervalo absoluto [Start, End) em UTC.
// Invariante: End > Start.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if !end.After(start) {
		return TimeInterval{}, httperr.ErrBusiness("validation_error")
	}
	return TimeInterval{Start: start, End: end}, nil
}

// IntervalFrom monta o intervalo ocupado a partir do início e dos
// minutos totais (duração + buffer).
func IntervalFrom(start time.Time, totalMinutes int) TimeInterval {
	return TimeInterval{
		Start: start,
		End:   start.Add(time.Duration(totalMinutes) * time.Minute),
	}
}

// Overlaps usa intervalos abertos: encostar (fim == início) não é
// sobreposição, então agendamentos back-to-back são legais.
func (i TimeInterval) Overlaps(o TimeInterval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

func (i TimeInterval) Minutes() int {
	return int(i.End.Sub(i.Start) / time.Minute)
}
