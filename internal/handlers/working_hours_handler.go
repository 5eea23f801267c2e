package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/middleware"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	professionalID := userIDVal.(uint)

	var hours []models.WorkingHours
	if err := h.db.
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	professionalID := userIDVal.(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Dia ativo precisa de janela válida; dia inativo pode vir vazio.
	for _, d := range req.Days {
		if !d.Active {
			continue
		}
		start, errS := time.Parse("15:04", d.StartTime)
		end, errE := time.Parse("15:04", d.EndTime)
		if errS != nil || errE != nil || !end.After(start) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "misconfigured_hours",
				"weekday": d.Weekday,
			})
			return
		}
	}

	if err := h.db.Where("professional_id = ?", professionalID).Delete(&models.WorkingHours{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_hours"})
		return
	}

	var toCreate []models.WorkingHours
	for _, d := range req.Days {
		wh := models.WorkingHours{
			ProfessionalID: professionalID,
			Weekday:        d.Weekday,
			Active:         d.Active,
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
		}
		toCreate = append(toCreate, wh)
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
