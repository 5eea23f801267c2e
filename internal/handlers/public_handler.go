package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/dto"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	booking "github.com/StudioBelezaApp/salon-scheduler/internal/usecase/booking"
	lastminute "github.com/StudioBelezaApp/salon-scheduler/internal/usecase/lastminute"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db *gorm.DB

	create       *booking.CreateBooking
	availability *booking.GetAvailability
	openings     *lastminute.ListOpenings
}

func NewPublicHandler(
	db *gorm.DB,
	create *booking.CreateBooking,
	availability *booking.GetAvailability,
	openings *lastminute.ListOpenings,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		create:       create,
		availability: availability,
		openings:     openings,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	ServiceIDs   []uint `json:"service_ids" binding:"required,min=1"`
	LocationType string `json:"location_type"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	Notes string `json:"notes"`
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}

	return &salon, true
}

func (h *PublicHandler) ownerProfessional(c *gin.Context, salonID uint) (*models.Professional, bool) {
	var pro models.Professional
	if err := h.db.
		Where("salon_id = ? AND role = ?", salonID, "owner").
		First(&pro).Error; err != nil {

		httperr.BadRequest(c, "professional_not_found", "Profissional não encontrado.")
		return nil, false
	}

	return &pro, true
}

////////////////////////////////////////////////////////
// OFFERINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListOfferings(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("salon_id = ? AND active = true", salon.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var offerings []models.ServiceOffering
	if err := q.Order("id ASC").Find(&offerings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_offerings", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":     salon,
		"offerings": offerings,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	offeringID, err := queryUint(c, "offering_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_offering_id", "Serviço inválido.")
		return
	}

	pro, ok := h.ownerProfessional(c, salon.ID)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		scheduling.AvailabilityInput{
			SalonID:        salon.ID,
			ProfessionalID: pro.ID,
			OfferingID:     offeringID,
			Date:           date,
		},
	)
	if err != nil {
		writeError(c, err, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// LAST-MINUTE OPENINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListOpenings(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	offeringID, err := queryUint(c, "offering_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_offering_id", "Serviço inválido.")
		return
	}

	pro, ok := h.ownerProfessional(c, salon.ID)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	openings, err := h.openings.Execute(c.Request.Context(), lastminute.ListOpeningsInput{
		SalonID:        salon.ID,
		ProfessionalID: pro.ID,
		OfferingID:     offeringID,
		Date:           date,
		Now:            nowInSalon(salon),
	})
	if err != nil {
		writeError(c, err, "failed_to_list_openings", "Erro ao listar vagas.")
		return
	}

	out := make([]dto.OpeningDTO, 0, len(openings))
	for _, o := range openings {
		out = append(out, dto.OpeningDTO{
			StartAt:     o.StartAt,
			EndAt:       o.EndAt,
			Tier:        string(o.Tier),
			DiscountPct: o.DiscountPct,
			PriceCents:  int64(o.PriceCents),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     dateStr,
		"openings": out,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING (PUBLIC → NASCE PENDENTE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	pro, ok := h.ownerProfessional(c, salon.ID)
	if !ok {
		return
	}

	start, err := parseDateTimeInSalon(salon, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), booking.CreateBookingInput{
		SalonID:        salon.ID,
		ProfessionalID: pro.ID,

		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,

		ScheduledFor: start.Format(time.RFC3339),
		ServiceIDs:   req.ServiceIDs,
		LocationType: req.LocationType,

		Notes: req.Notes,

		ProfessionalInitiated: false,
		EnforceMinAdvance:     true,
		Now:                   time.Now().UTC(),
	})
	if err != nil {
		writeError(c, err, "failed_to_create_booking", "Erro ao criar agendamento.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reference":       b.Reference,
		"scheduled_start": b.ScheduledStart,
		"ends_at":         b.EndsAt,
		"status":          b.Status,
		"price_cents":     b.PriceCents,
	})
}
