package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/dto"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httpresp"
	"github.com/StudioBelezaApp/salon-scheduler/internal/middleware"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	booking "github.com/StudioBelezaApp/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	create     *booking.CreateBooking
	reschedule *booking.RescheduleBooking
	accept     *booking.AcceptBooking
	cancel     *booking.CancelBooking
	complete   *booking.CompleteBooking
}

func NewBookingHandler(
	db *gorm.DB,
	create *booking.CreateBooking,
	reschedule *booking.RescheduleBooking,
	accept *booking.AcceptBooking,
	cancel *booking.CancelBooking,
	complete *booking.CompleteBooking,
) *BookingHandler {
	return &BookingHandler{
		db:         db,
		create:     create,
		reschedule: reschedule,
		accept:     accept,
		cancel:     cancel,
		complete:   complete,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ScheduledFor string `json:"scheduled_for" binding:"required"` // RFC 3339
	ServiceIDs   []uint `json:"service_ids" binding:"required,min=1"`
	LocationType string `json:"location_type"`

	BufferMinutes        *int `json:"buffer_minutes"`
	TotalDurationMinutes *int `json:"total_duration_minutes"`

	Notes string `json:"notes"`

	AllowOutsideHours bool `json:"allow_outside_hours"`
}

type RescheduleBookingRequest struct {
	NewStart           *string `json:"new_start"` // RFC 3339
	NewDurationMinutes *int    `json:"new_duration_minutes"`
	AllowOutsideHours  bool    `json:"allow_outside_hours"`
}

type ResizeBookingRequest struct {
	NewDurationMinutes int  `json:"new_duration_minutes" binding:"required,min=1"`
	AllowOutsideHours  bool `json:"allow_outside_hours"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), booking.CreateBookingInput{
		SalonID:        salonID,
		ProfessionalID: professionalID,

		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,

		ScheduledFor: req.ScheduledFor,
		ServiceIDs:   req.ServiceIDs,
		LocationType: req.LocationType,

		BufferMinutes:        req.BufferMinutes,
		TotalDurationMinutes: req.TotalDurationMinutes,

		Notes: req.Notes,

		ProfessionalInitiated: true,
		AllowOutsideHours:     req.AllowOutsideHours,
		Now:                   time.Now().UTC(),
	})
	if err != nil {
		writeError(c, err, "failed_to_create_booking", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	date, err := parseDateInSalon(&salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	h.listRange(c, professionalID, start, end)
}

func (h *BookingHandler) ListByPeriod(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		httperr.BadRequest(c, "missing_period", "Período obrigatório (from/to).")
		return
	}

	from, errF := parseDateInSalon(&salon, fromStr)
	to, errT := parseDateInSalon(&salon, toStr)
	if errF != nil || errT != nil || to.Before(from) {
		httperr.BadRequest(c, "invalid_period", "Período inválido.")
		return
	}

	h.listRange(c, professionalID, from, to.Add(24*time.Hour))
}

func (h *BookingHandler) listRange(
	c *gin.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) {
	var bookings []models.Booking
	if err := h.db.
		Preload("Client").
		Preload("Items").
		Where(
			"professional_id = ? AND scheduled_start >= ? AND scheduled_start < ?",
			professionalID, start, end,
		).
		Order("scheduled_start ASC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar agendamentos.")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		items := make([]dto.BookingItemDTO, 0, len(b.Items))
		for _, it := range b.Items {
			items = append(items, dto.BookingItemDTO{
				ServiceOfferingID: it.ServiceOfferingID,
				Name:              it.Name,
				DurationMinutes:   it.DurationMinutes,
				PriceCents:        it.PriceCents,
			})
		}

		out = append(out, dto.BookingListDTO{
			ID:                   b.ID,
			Reference:            b.Reference,
			ScheduledStart:       b.ScheduledStart,
			EndsAt:               b.EndsAt,
			TotalDurationMinutes: b.TotalDurationMinutes,
			BufferMinutes:        b.BufferMinutes,
			LocationType:         b.LocationType,
			Status:               b.Status,
			PriceCents:           b.PriceCents,
			ClientName:           b.Client.Name,
			ClientPhone:          b.Client.Phone,
			Notes:                b.Notes,
			Items:                items,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// TRANSIÇÕES DE ESTADO
// ======================================================

func (h *BookingHandler) Accept(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	b, err := h.accept.Execute(c.Request.Context(), salonID, professionalID, id)
	if err != nil {
		writeError(c, err, "failed_to_accept_booking", "Erro ao aceitar agendamento.")
		return
	}

	c.JSON(http.StatusOK, b)
}

// Decline é cancelamento de pendente; o código de estado cuida da
// validação da transição.
func (h *BookingHandler) Decline(c *gin.Context) {
	h.doCancel(c, "failed_to_decline_booking", "Erro ao recusar agendamento.")
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.doCancel(c, "failed_to_cancel_booking", "Erro ao cancelar agendamento.")
}

func (h *BookingHandler) doCancel(c *gin.Context, internalCode, internalMsg string) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), salonID, professionalID, id)
	if err != nil {
		writeError(c, err, internalCode, internalMsg)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	b, err := h.complete.Execute(c.Request.Context(), salonID, professionalID, id)
	if err != nil {
		writeError(c, err, "failed_to_complete_booking", "Erro ao concluir agendamento.")
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// RESCHEDULE / RESIZE
// ======================================================

func (h *BookingHandler) Reschedule(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.reschedule.Execute(c.Request.Context(), booking.RescheduleBookingInput{
		SalonID:        salonID,
		ProfessionalID: professionalID,
		BookingID:      id,

		NewStart:           req.NewStart,
		NewDurationMinutes: req.NewDurationMinutes,
		AllowOutsideHours:  req.AllowOutsideHours,
	})
	if err != nil {
		writeError(c, err, "failed_to_reschedule_booking", "Erro ao remarcar agendamento.")
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Resize(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req ResizeBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.reschedule.Resize(
		c.Request.Context(),
		salonID,
		professionalID,
		id,
		req.NewDurationMinutes,
		req.AllowOutsideHours,
	)
	if err != nil {
		writeError(c, err, "failed_to_resize_booking", "Erro ao redimensionar agendamento.")
		return
	}

	c.JSON(http.StatusOK, b)
}
