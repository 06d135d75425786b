package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/config"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/validators"
	"github.com/leo-otica/otica-erp/internal/whatsapp"
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
	ShopName    string `json:"shop_name" binding:"required"`
	ShopPhone   string `json:"shop_phone"`
	ShopAddress string `json:"shop_address"`

	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
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

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !validators.IsValidUsername(username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_username"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	shop := models.Shop{
		Name:          req.ShopName,
		Phone:         req.ShopPhone,
		Address:       req.ShopAddress,
		RecallDays:    180,
		RecallMessage: whatsapp.DefaultTemplate,
	}

	user := models.User{
		Name:         req.Name,
		Username:     username,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}

	// loja e admin nascem juntos ou nada é gravado; usuário duplicado
	// volta do banco como violação de chave única
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}
		user.ShopID = shop.ID
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "username_already_exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_register"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"username": user.Username,
			"role":     user.Role,
			"shop_id":  user.ShopID,
		},
		"shop": gin.H{
			"id":      shop.ID,
			"name":    shop.Name,
			"phone":   shop.Phone,
			"address": shop.Address,
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

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var user models.User
	if err := h.db.Preload("Shop").
		Where("username = ?", username).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"username": user.Username,
			"role":     user.Role,
			"shop_id":  user.ShopID,
		},
		"shop": gin.H{
			"id":      user.Shop.ID,
			"name":    user.Shop.Name,
			"phone":   user.Shop.Phone,
			"address": user.Shop.Address,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":    user.ID,
		"shopId": user.ShopID,
		"role":   user.Role,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
