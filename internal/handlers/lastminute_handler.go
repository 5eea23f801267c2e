package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/dto"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/httpresp"
	"github.com/StudioBelezaApp/salon-scheduler/internal/middleware"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	lastminute "github.com/StudioBelezaApp/salon-scheduler/internal/usecase/lastminute"
)

// ======================================================
// HANDLER
// ======================================================

type LastMinuteHandler struct {
	db       *gorm.DB
	openings *lastminute.ListOpenings
}

func NewLastMinuteHandler(
	db *gorm.DB,
	openings *lastminute.ListOpenings,
) *LastMinuteHandler {
	return &LastMinuteHandler{
		db:       db,
		openings: openings,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type LastMinuteSettingsRequest struct {
	Enabled          bool `json:"enabled"`
	DiscountsEnabled bool `json:"discounts_enabled"`

	SameDayPct   int `json:"same_day_pct" binding:"min=0,max=50"`
	Within24hPct int `json:"within_24h_pct" binding:"min=0,max=50"`

	MinPriceCents *int64 `json:"min_price_cents"`

	DisabledWeekdays []int `json:"disabled_weekdays"` // 0=domingo .. 6=sábado
}

type LastMinuteRuleRequest struct {
	ServiceOfferingID uint   `json:"service_offering_id" binding:"required"`
	Enabled           bool   `json:"enabled"`
	MinPriceCents     *int64 `json:"min_price_cents"`
}

type lastMinuteSettingsResponse struct {
	Enabled          bool   `json:"enabled"`
	DiscountsEnabled bool   `json:"discounts_enabled"`
	SameDayPct       int    `json:"same_day_pct"`
	Within24hPct     int    `json:"within_24h_pct"`
	MinPriceCents    *int64 `json:"min_price_cents"`
	DisabledWeekdays []int  `json:"disabled_weekdays"`
}

func settingsResponse(s *models.LastMinuteSettings) lastMinuteSettingsResponse {
	return lastMinuteSettingsResponse{
		Enabled:          s.Enabled,
		DiscountsEnabled: s.DiscountsEnabled,
		SameDayPct:       s.SameDayPct,
		Within24hPct:     s.Within24hPct,
		MinPriceCents:    s.MinPriceCents,
		DisabledWeekdays: s.DisabledWeekdayList(),
	}
}

// ======================================================
// SETTINGS
// ======================================================

func (h *LastMinuteHandler) GetSettings(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)

	var settings models.LastMinuteSettings
	err := h.db.
		Where("professional_id = ?", professionalID).
		First(&settings).Error

	if err == gorm.ErrRecordNotFound {
		// Sem configuração = desligado. Devolve o default, não 404.
		c.JSON(http.StatusOK, settingsResponse(&models.LastMinuteSettings{}))
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Erro ao buscar configuração.")
		return
	}

	c.JSON(http.StatusOK, settingsResponse(&settings))
}

func (h *LastMinuteHandler) UpdateSettings(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)

	var req LastMinuteSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	for _, wd := range req.DisabledWeekdays {
		if wd < 0 || wd > 6 {
			httperr.BadRequest(c, "validation_error", "Dia da semana inválido.")
			return
		}
	}
	if req.MinPriceCents != nil && *req.MinPriceCents < 0 {
		httperr.BadRequest(c, "validation_error", "Preço mínimo inválido.")
		return
	}

	var settings models.LastMinuteSettings
	err := h.db.
		Where("professional_id = ?", professionalID).
		First(&settings).Error

	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_get_settings", "Erro ao buscar configuração.")
		return
	}

	settings.ProfessionalID = professionalID
	settings.Enabled = req.Enabled
	settings.DiscountsEnabled = req.DiscountsEnabled
	settings.SameDayPct = req.SameDayPct
	settings.Within24hPct = req.Within24hPct
	settings.MinPriceCents = req.MinPriceCents
	settings.SetDisabledWeekdays(req.DisabledWeekdays)

	if err := h.db.Save(&settings).Error; err != nil {
		httperr.Internal(c, "failed_to_save_settings", "Erro ao salvar configuração.")
		return
	}

	c.JSON(http.StatusOK, settingsResponse(&settings))
}

// ======================================================
// REGRAS POR SERVIÇO
// ======================================================

func (h *LastMinuteHandler) ListRules(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)

	var rules []models.LastMinuteServiceRule
	if err := h.db.
		Where("professional_id = ?", professionalID).
		Order("service_offering_id ASC").
		Find(&rules).Error; err != nil {

		httperr.Internal(c, "failed_to_list_rules", "Erro ao listar regras.")
		return
	}

	c.JSON(http.StatusOK, rules)
}

func (h *LastMinuteHandler) UpsertRule(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req LastMinuteRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.MinPriceCents != nil && *req.MinPriceCents < 0 {
		httperr.BadRequest(c, "validation_error", "Preço mínimo inválido.")
		return
	}

	var offering models.ServiceOffering
	if err := h.db.
		Where("id = ? AND salon_id = ?", req.ServiceOfferingID, salonID).
		First(&offering).Error; err != nil {

		httperr.NotFound(c, "not_found", "Serviço não encontrado.")
		return
	}

	var rule models.LastMinuteServiceRule
	err := h.db.
		Where("professional_id = ? AND service_offering_id = ?", professionalID, req.ServiceOfferingID).
		First(&rule).Error

	if err != nil && err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_get_rule", "Erro ao buscar regra.")
		return
	}

	rule.ProfessionalID = professionalID
	rule.ServiceOfferingID = req.ServiceOfferingID
	rule.Enabled = req.Enabled
	rule.MinPriceCents = req.MinPriceCents

	if err := h.db.Save(&rule).Error; err != nil {
		httperr.Internal(c, "failed_to_save_rule", "Erro ao salvar regra.")
		return
	}

	c.JSON(http.StatusOK, rule)
}

// ======================================================
// OPENINGS
// ======================================================

func (h *LastMinuteHandler) ListOpenings(c *gin.Context) {
	professionalID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	offeringID, err := queryUint(c, "offering_id")
	if err != nil {
		httperr.BadRequest(c, "validation_error", "Serviço obrigatório.")
		return
	}

	date, err := parseDateInSalon(&salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	openings, err := h.openings.Execute(c.Request.Context(), lastminute.ListOpeningsInput{
		SalonID:        salonID,
		ProfessionalID: professionalID,
		OfferingID:     offeringID,
		Date:           date,
		Now:            nowInSalon(&salon),
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

	httpresp.List(c, out)
}
