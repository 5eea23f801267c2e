package scheduling

// Grade de duração: tudo que a engine agenda anda em passos de 15
// minutos, com limites fixos para duração e buffer.
const (
	GridStepMinutes    = 15
	MinDurationMinutes = 15
	MaxDurationMinutes = 720
	MinBufferMinutes   = 0
	MaxBufferMinutes   = 180
)

// SnapToGrid arredonda para o múltiplo de 15 mais próximo, com piso
// em zero. Idempotente.
func SnapToGrid(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	rem := minutes % GridStepMinutes
	if rem*2 >= GridStepMinutes {
		return minutes + (GridStepMinutes - rem)
	}
	return minutes - rem
}

func ClampDuration(minutes int) int {
	if minutes < MinDurationMinutes {
		return MinDurationMinutes
	}
	if minutes > MaxDurationMinutes {
		return MaxDurationMinutes
	}
	return minutes
}

func ClampBuffer(minutes int) int {
	snapped := SnapToGrid(minutes)
	if snapped < MinBufferMinutes {
		return MinBufferMinutes
	}
	if snapped > MaxBufferMinutes {
		return MaxBufferMinutes
	}
	return snapped
}

// ResolveTotalDuration: um total explícito do caller vence, se já for
// um valor válido na grade — é assim que um resize interativo ganha
// da soma desatualizada dos serviços. Senão, deriva da soma dos itens.
func ResolveTotalDuration(requestedMinutes *int, computedFromItemsMinutes int) int {
	if requestedMinutes != nil {
		r := *requestedMinutes
		if r%GridStepMinutes == 0 && r >= MinDurationMinutes && r <= MaxDurationMinutes {
			return r
		}
	}
	return ClampDuration(SnapToGrid(computedFromItemsMinutes))
}
