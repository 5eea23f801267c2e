package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/middleware"
	booking "github.com/StudioBelezaApp/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// Fluxo de arrastar-e-soltar da agenda: o front propõe o novo
// horário, mostra o diagnóstico (conflitos, fora do expediente) e só
// então confirma.
type PendingChangeHandler struct {
	pending *booking.PendingChange
}

func NewPendingChangeHandler(pending *booking.PendingChange) *PendingChangeHandler {
	return &PendingChangeHandler{pending: pending}
}

// ======================================================
// REQUESTS
// ======================================================

type ProposeChangeRequest struct {
	EntityType string `json:"entity_type" binding:"required,oneof=booking block"`
	EntityID   uint   `json:"entity_id" binding:"required"`

	NewStart           *string `json:"new_start"` // RFC 3339
	NewDurationMinutes *int    `json:"new_duration_minutes"`
}

type ConfirmChangeRequest struct {
	ProposeChangeRequest

	AllowOutsideHours bool `json:"allow_outside_hours"`
}

// ======================================================
// PROPOSE
// ======================================================

func (h *PendingChangeHandler) Propose(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req ProposeChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	proposal, err := h.pending.Propose(c.Request.Context(), booking.ProposeChangeInput{
		SalonID:        salonID,
		ProfessionalID: professionalID,

		EntityType: req.EntityType,
		EntityID:   req.EntityID,

		NewStart:           req.NewStart,
		NewDurationMinutes: req.NewDurationMinutes,
	})
	if err != nil {
		writeError(c, err, "failed_to_propose_change", "Erro ao avaliar alteração.")
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// ======================================================
// CONFIRM
// ======================================================

func (h *PendingChangeHandler) Confirm(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req ConfirmChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.pending.Confirm(c.Request.Context(), booking.ConfirmChangeInput{
		ProposeChangeInput: booking.ProposeChangeInput{
			SalonID:        salonID,
			ProfessionalID: professionalID,

			EntityType: req.EntityType,
			EntityID:   req.EntityID,

			NewStart:           req.NewStart,
			NewDurationMinutes: req.NewDurationMinutes,
		},
		AllowOutsideHours: req.AllowOutsideHours,
	})
	if err != nil {
		writeError(c, err, "failed_to_confirm_change", "Erro ao confirmar alteração.")
		return
	}

	c.JSON(http.StatusOK, result)
}
