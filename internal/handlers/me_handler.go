package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/middleware"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var pro models.Professional
	if err := h.db.Preload("Salon").First(&pro, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "professional_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professional": gin.H{
			"id":       pro.ID,
			"name":     pro.Name,
			"email":    pro.Email,
			"phone":    pro.Phone,
			"role":     pro.Role,
			"salon_id": pro.SalonID,
		},
		"salon": gin.H{
			"id":       pro.Salon.ID,
			"name":     pro.Salon.Name,
			"slug":     pro.Salon.Slug,
			"phone":    pro.Salon.Phone,
			"address":  pro.Salon.Address,
			"timezone": pro.Salon.Timezone,
		},
	})
}
