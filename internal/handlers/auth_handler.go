package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/StudioBelezaApp/salon-scheduler/internal/config"
	"github.com/StudioBelezaApp/salon-scheduler/internal/models"
	"github.com/StudioBelezaApp/salon-scheduler/internal/timezone"
	"github.com/StudioBelezaApp/salon-scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	SalonName     string `json:"salon_name" binding:"required"`
	SalonSlug     string `json:"salon_slug" binding:"required"`
	SalonPhone    string `json:"salon_phone"`
	SalonAddress  string `json:"salon_address"`
	SalonTimezone string `json:"salon_timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.SalonSlug))

	var count int64
	h.db.Model(&models.Salon{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	tz := req.SalonTimezone
	if tz != "" && !timezone.IsValid(tz) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_zone"})
		return
	}
	if tz == "" {
		tz = h.config.DefaultTimezone
	}

	salon := models.Salon{
		Name:     req.SalonName,
		Slug:     slug,
		Phone:    req.SalonPhone,
		Address:  req.SalonAddress,
		Timezone: tz,
	}

	if err := h.db.Create(&salon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_salon"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.EmailDomainResolves(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	pro := models.Professional{
		SalonID:      salon.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "owner",
	}

	if err := h.db.Create(&pro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_professional"})
		return
	}

	token, err := h.generateToken(&pro)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"professional": gin.H{
			"id":       pro.ID,
			"name":     pro.Name,
			"email":    pro.Email,
			"phone":    pro.Phone,
			"salon_id": pro.SalonID,
		},
		"salon": gin.H{
			"id":       salon.ID,
			"name":     salon.Name,
			"slug":     salon.Slug,
			"phone":    salon.Phone,
			"address":  salon.Address,
			"timezone": salon.Timezone,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var pro models.Professional
	if err := h.db.Preload("Salon").
		Where("email = ?", email).
		First(&pro).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(pro.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&pro)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professional": gin.H{
			"id":       pro.ID,
			"name":     pro.Name,
			"email":    pro.Email,
			"phone":    pro.Phone,
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
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(pro *models.Professional) (string, error) {
	claims := jwt.MapClaims{
		"sub":     pro.ID,
		"salonId": pro.SalonID,
		"role":    pro.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
