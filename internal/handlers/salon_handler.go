package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/httperr"
	"github.com/StudioBelezaApp/salon-scheduler/internal/middleware"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/timezone"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

type UpdateSalonConfigRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *SalonHandler) GetMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) UpdateMeSalon(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	var req UpdateSalonConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}

	// Timezone só entra validado contra o banco IANA. Agendamentos
	// existentes continuam em UTC; só a projeção local muda.
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_time_zone", "Fuso horário inválido.")
			return
		}
		salon.Timezone = *req.Timezone
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao salvar as configurações do salão.")
		return
	}

	c.JSON(http.StatusOK, salon)
}
