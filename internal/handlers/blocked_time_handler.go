package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/audit"
	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/middleware"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type BlockedTimeHandler struct {
	db    *gorm.DB
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewBlockedTimeHandler(
	db *gorm.DB,
	repo scheduling.Repository,
	auditDisp *audit.Dispatcher,
) *BlockedTimeHandler {
	return &BlockedTimeHandler{
		db:    db,
		repo:  repo,
		audit: auditDisp,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBlockedTimeRequest struct {
	StartAt string `json:"start_at" binding:"required"` // RFC 3339
	EndAt   string `json:"end_at" binding:"required"`   // RFC 3339
	Reason  string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BlockedTimeHandler) Create(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateBlockedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	startAt, errS := time.Parse(time.RFC3339, req.StartAt)
	endAt, errE := time.Parse(time.RFC3339, req.EndAt)
	if errS != nil || errE != nil {
		httperr.BadRequest(c, "validation_error", "Datas inválidas.")
		return
	}

	interval, err := scheduling.NewTimeInterval(startAt.UTC(), endAt.UTC())
	if err != nil {
		writeError(c, err, "invalid_block_window", "Janela de bloqueio inválida.")
		return
	}

	// Bloqueio não pode atravessar agendamento ativo.
	existing, err := h.repo.FindCommitmentsInRange(
		c.Request.Context(),
		professionalID,
		interval.Start,
		interval.End,
		0,
		0,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_check_conflicts", "Erro ao validar bloqueio.")
		return
	}
	if scheduling.HasConflict(interval, existing) {
		httperr.Conflict(c, "time_slot_unavailable", "Período já ocupado.")
		return
	}

	blk := models.BlockedTime{
		ProfessionalID: professionalID,
		StartAt:        interval.Start,
		EndAt:          interval.End,
		Reason:         req.Reason,
	}

	if err := h.repo.CreateBlock(c.Request.Context(), &blk); err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erro ao criar bloqueio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &professionalID,
		Action:   "block_created",
		Entity:   "block",
		EntityID: &blk.ID,
	})

	c.JSON(http.StatusCreated, blk)
}

// ======================================================
// LIST
// ======================================================

func (h *BlockedTimeHandler) List(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	dateStr := c.Query("date")

	q := h.db.Where("professional_id = ?", professionalID)

	if dateStr != "" {
		date, err := parseDateInSalon(&salon, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		dayEnd := dayStart.Add(24 * time.Hour)
		q = q.Where("start_at < ? AND end_at > ?", dayEnd, dayStart)
	}

	var blocks []models.BlockedTime
	if err := q.Order("start_at ASC").Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

// ======================================================
// DELETE
// ======================================================

func (h *BlockedTimeHandler) Delete(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	blk, err := h.repo.GetBlockForProfessional(c.Request.Context(), id, professionalID)
	if err != nil {
		httperr.NotFound(c, "not_found", "Bloqueio não encontrado.")
		return
	}

	if err := h.repo.DeleteBlock(c.Request.Context(), blk.ID, professionalID); err != nil {
		httperr.Internal(c, "failed_to_delete_block", "Erro ao remover bloqueio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &professionalID,
		Action:   "block_deleted",
		Entity:   "block",
		EntityID: &blk.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
