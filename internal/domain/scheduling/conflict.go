package scheduling

import "time"

// Detecção de conflito de agenda. O caller é responsável por filtrar
// bookings cancelados ANTES de chamar aqui (a query do repositório já
// faz isso pelo status); o predicado nunca olha status.

// FindConflicts devolve os intervalos existentes que colidem com o
// candidato, para mensagem de diagnóstico. Vazio = sem conflito.
func FindConflicts(candidate TimeInterval, existing []TimeInterval) []TimeInterval {
	var hits []TimeInterval
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			hits = append(hits, iv)
		}
	}
	return hits
}

// HasConflict responde sim/não. Conflito com um único intervalo já
// rejeita o candidato inteiro — não existe aceite parcial.
func HasConflict(candidate TimeInterval, existing []TimeInterval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

// NeighborhoodWindow calcula a janela de consulta em volta do
// candidato: [start - 2×total, start + 2×total]. É contrato de
// eficiência para a query de compromissos, não de correção —
// HasConflict continua correto para qualquer conjunto de entrada.
func NeighborhoodWindow(start time.Time, totalMinutes int) TimeInterval {
	span := time.Duration(2*totalMinutes) * time.Minute
	return TimeInterval{
		Start: start.Add(-span),
		End:   start.Add(span),
	}
}
