package timezone

import (
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
)

// Zona inválida é erro duro ("invalid_time_zone") dentro da engine.
// O fallback existe só via Sanitize, chamado explicitamente na borda
// da API — nunca escondido dentro de regra de negócio.

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Sanitize devolve tz se válida, senão o fallback. Nunca falha.
func Sanitize(tz string, fallback string) string {
	if IsValid(tz) {
		return tz
	}
	return fallback
}

func Location(tz string) (*time.Location, error) {
	if tz == "" {
		return nil, httperr.ErrBusiness("invalid_time_zone")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time_zone")
	}
	return loc, nil
}

func NowIn(tz string) (time.Time, error) {
	loc, err := Location(tz)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// ======================================================
// Civil time ↔ instante UTC
// ======================================================

// Civil é data + hora de relógio, sem zona associada.
type Civil struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Day    int        `json:"day"`
	Hour   int        `json:"hour"`
	Minute int        `json:"minute"`
	Second int        `json:"second"`
}

// CivilToUTC interpreta os campos civis como hora de parede em tz e
// devolve o instante UTC correspondente.
func CivilToUTC(cv Civil, tz string) (time.Time, error) {
	loc, err := Location(tz)
	if err != nil {
		return time.Time{}, err
	}
	t := time.Date(cv.Year, cv.Month, cv.Day, cv.Hour, cv.Minute, cv.Second, 0, loc)
	return t.UTC(), nil
}

// UTCToCivil é a operação inversa.
func UTCToCivil(t time.Time, tz string) (Civil, error) {
	loc, err := Location(tz)
	if err != nil {
		return Civil{}, err
	}
	lt := t.In(loc)
	return Civil{
		Year:   lt.Year(),
		Month:  lt.Month(),
		Day:    lt.Day(),
		Hour:   lt.Hour(),
		Minute: lt.Minute(),
		Second: lt.Second(),
	}, nil
}

// ======================================================
// Weekday
// ======================================================

var weekdayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// Weekday devolve o dia da semana do instante, na zona informada
// (0 = domingo, convenção time.Weekday).
func Weekday(t time.Time, tz string) (time.Weekday, error) {
	loc, err := Location(tz)
	if err != nil {
		return 0, err
	}
	return t.In(loc).Weekday(), nil
}

// WeekdayKey devolve a chave "sun".."sat" do instante na zona.
func WeekdayKey(t time.Time, tz string) (string, error) {
	wd, err := Weekday(t, tz)
	if err != nil {
		return "", err
	}
	return weekdayKeys[int(wd)], nil
}
