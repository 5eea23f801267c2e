package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/logging"

	"go.uber.org/zap"
)

// Mensagens por código de negócio. O código é o contrato; a mensagem
// é só para humanos.
var businessMessages = map[string]string{
	"validation_error":      "Dados inválidos.",
	"service_not_offered":   "Serviço indisponível para esta modalidade.",
	"outside_working_hours": "Fora do horário de atendimento.",
	"misconfigured_hours":   "Horário de atendimento mal configurado.",
	"time_slot_unavailable": "Horário indisponível.",
	"invalid_time_zone":     "Fuso horário inválido.",
	"invalid_state":         "Operação inválida para o estado atual.",
	"not_found":             "Registro não encontrado.",
	"too_soon":              "Antecedência mínima não respeitada.",
}

// writeBusinessError traduz erro de negócio em resposta HTTP.
// Devolve false se o erro não for de negócio (caller trata como 500).
func writeBusinessError(c *gin.Context, err error) bool {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		return false
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = "Operação não permitida."
	}

	switch code {
	case "not_found":
		httperr.NotFound(c, code, msg)
	case "time_slot_unavailable":
		httperr.Conflict(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}

	return true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "validation_error", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

func queryUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func writeError(c *gin.Context, err error, internalCode, internalMsg string) {
	if writeBusinessError(c, err) {
		return
	}
	logging.L().Error("unexpected handler error",
		zap.String("code", internalCode),
		zap.Error(err),
	)
	httperr.Internal(c, internalCode, internalMsg)
}
