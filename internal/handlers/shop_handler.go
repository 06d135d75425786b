package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/timezone"
)

type ShopHandler struct {
	db *gorm.DB
}

func NewShopHandler(db *gorm.DB) *ShopHandler {
	return &ShopHandler{db: db}
}

type UpdateShopRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Timezone      *string `json:"timezone"`
	RecallDays    *int    `json:"recall_days"`
	RecallMessage *string `json:"recall_message"`
}

func (h *ShopHandler) GetMeShop(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "shop_not_found", "Loja não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_shop", "Erro ao buscar dados da loja.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) UpdateMeShop(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "shop_not_found", "Loja não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_shop", "Erro ao buscar dados da loja.")
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}
	if req.RecallDays != nil {
		if *req.RecallDays <= 0 {
			httperr.BadRequest(c, "invalid_recall_days", "O período de recall deve ser positivo (em dias).")
			return
		}
		shop.RecallDays = *req.RecallDays
	}
	if req.RecallMessage != nil {
		shop.RecallMessage = *req.RecallMessage
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Erro ao salvar as configurações da loja.")
		return
	}

	c.JSON(http.StatusOK, shop)
}
