package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/domain/scheduling"
	"github.com/StudioBelezaApp/salon-scheduler/internal/middleware"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

type OfferingHandler struct {
	db *gorm.DB
}

func NewOfferingHandler(db *gorm.DB) *OfferingHandler {
	return &OfferingHandler{db: db}
}

// --------- Requests ---------

type CreateOfferingRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`

	DurationMin       int  `json:"duration_min" binding:"required,min=1"`
	SalonDurationMin  *int `json:"salon_duration_min"`
	MobileDurationMin *int `json:"mobile_duration_min"`

	PriceCents int64 `json:"price_cents" binding:"required,min=0"`

	SalonEnabled  *bool `json:"salon_enabled"`
	MobileEnabled *bool `json:"mobile_enabled"`
}

type UpdateOfferingRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`

	DurationMin       *int `json:"duration_min,omitempty"`
	SalonDurationMin  *int `json:"salon_duration_min,omitempty"`
	MobileDurationMin *int `json:"mobile_duration_min,omitempty"`

	PriceCents *int64 `json:"price_cents,omitempty"`

	SalonEnabled  *bool `json:"salon_enabled,omitempty"`
	MobileEnabled *bool `json:"mobile_enabled,omitempty"`
	Active        *bool `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *OfferingHandler) List(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("salon_id = ?", salonID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr != "" {
		if activeStr == "true" {
			q = q.Where("active = ?", true)
		} else if activeStr == "false" {
			q = q.Where("active = ?", false)
		}
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var offerings []models.ServiceOffering
	if err := q.
		Order("id ASC").
		Find(&offerings).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_offerings"})
		return
	}

	c.JSON(http.StatusOK, offerings)
}

func (h *OfferingHandler) Create(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	var req CreateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Durações sempre caem na grade de 15 min no momento da escrita.
	offering := models.ServiceOffering{
		SalonID:     salonID,
		Name:        req.Name,
		Description: req.Description,
		Category:    strings.ToLower(req.Category),

		DurationMin: scheduling.ClampDuration(scheduling.SnapToGrid(req.DurationMin)),
		PriceCents:  req.PriceCents,

		SalonEnabled: true,
		Active:       true,
	}

	if req.SalonDurationMin != nil {
		d := scheduling.ClampDuration(scheduling.SnapToGrid(*req.SalonDurationMin))
		offering.SalonDurationMin = &d
	}
	if req.MobileDurationMin != nil {
		d := scheduling.ClampDuration(scheduling.SnapToGrid(*req.MobileDurationMin))
		offering.MobileDurationMin = &d
	}
	if req.SalonEnabled != nil {
		offering.SalonEnabled = *req.SalonEnabled
	}
	if req.MobileEnabled != nil {
		offering.MobileEnabled = *req.MobileEnabled
	}

	if err := h.db.Create(&offering).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_offering"})
		return
	}

	c.JSON(http.StatusCreated, offering)
}

func (h *OfferingHandler) Update(c *gin.Context) {
	salonIDVal, _ := c.Get(middleware.ContextSalonID)
	salonID := salonIDVal.(uint)

	id := c.Param("id")

	var offering models.ServiceOffering
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&offering).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "offering_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_offering"})
		return
	}

	var req UpdateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		offering.Name = *req.Name
	}
	if req.Description != nil {
		offering.Description = *req.Description
	}
	if req.Category != nil {
		offering.Category = strings.ToLower(*req.Category)
	}
	if req.DurationMin != nil {
		offering.DurationMin = scheduling.ClampDuration(scheduling.SnapToGrid(*req.DurationMin))
	}
	if req.SalonDurationMin != nil {
		d := scheduling.ClampDuration(scheduling.SnapToGrid(*req.SalonDurationMin))
		offering.SalonDurationMin = &d
	}
	if req.MobileDurationMin != nil {
		d := scheduling.ClampDuration(scheduling.SnapToGrid(*req.MobileDurationMin))
		offering.MobileDurationMin = &d
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_price"})
			return
		}
		offering.PriceCents = *req.PriceCents
	}
	if req.SalonEnabled != nil {
		offering.SalonEnabled = *req.SalonEnabled
	}
	if req.MobileEnabled != nil {
		offering.MobileEnabled = *req.MobileEnabled
	}
	if req.Active != nil {
		offering.Active = *req.Active
	}

	if err := h.db.Save(&offering).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_offering"})
		return
	}

	c.JSON(http.StatusOK, offering)
}
