package handlers

import (
	"time"

	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/timezone"
)

// Fallback de timezone do boundary HTTP. Vem do config na subida do
// servidor; o valor inicial só cobre testes e chamadas antes do wiring.
var fallbackTimezone = "America/Sao_Paulo"

// SetFallbackTimezone injeta o DEFAULT_TIMEZONE do config. Zona
// inválida é ignorada e o fallback anterior permanece.
func SetFallbackTimezone(tz string) {
	if timezone.IsValid(tz) {
		fallbackTimezone = tz
	}
}

// --------------------------------------------------
// Timezone centralizado por salão
// --------------------------------------------------

// resolve o timezone oficial do salão
func locationFromSalon(salon *models.Salon) *time.Location {
	if salon != nil {
		if loc, err := time.LoadLocation(timezone.Sanitize(salon.Timezone, fallbackTimezone)); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(fallbackTimezone)
	return loc
}

func nowInSalon(salon *models.Salon) time.Time {
	return time.Now().In(locationFromSalon(salon))
}

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromSalon(salon),
	)
}

func parseDateTimeInSalon(
	salon *models.Salon,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromSalon(salon),
	)
}
