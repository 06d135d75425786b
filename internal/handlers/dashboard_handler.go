package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/finance"
	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/timezone"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Get monta o painel: caixa do mês, caixa do dia, O.S. por status,
// produtos abaixo do mínimo e total de clientes. Só leitura e agregação.
func (h *DashboardHandler) Get(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Loja não encontrada.")
		return
	}

	now := timezone.NowIn(shop.Timezone)
	startOfDay := timezone.StartOfDay(now, shop.Timezone)
	startOfMonth := timezone.StartOfMonth(now, shop.Timezone)

	var monthTxs []models.Transaction
	if err := h.db.
		Where("shop_id = ? AND date >= ?", shopID, startOfMonth).
		Find(&monthTxs).Error; err != nil {

		httperr.Internal(c, "failed_to_load_dashboard", "Erro ao montar o painel.")
		return
	}

	var todayTxs []models.Transaction
	if err := h.db.
		Where("shop_id = ? AND date >= ?", shopID, startOfDay).
		Find(&todayTxs).Error; err != nil {

		httperr.Internal(c, "failed_to_load_dashboard", "Erro ao montar o painel.")
		return
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	var byStatus []statusCount
	if err := h.db.
		Model(&models.ServiceOrder{}).
		Select("status, COUNT(*) AS count").
		Where("shop_id = ?", shopID).
		Group("status").
		Find(&byStatus).Error; err != nil {

		httperr.Internal(c, "failed_to_load_dashboard", "Erro ao montar o painel.")
		return
	}

	var openOrders int64
	h.db.Model(&models.ServiceOrder{}).
		Where("shop_id = ? AND status <> ?", shopID, "delivered").
		Count(&openOrders)

	var lowStock int64
	h.db.Model(&models.Product{}).
		Where("shop_id = ? AND stock <= min_stock", shopID).
		Count(&lowStock)

	var clients int64
	h.db.Model(&models.Client{}).
		Where("shop_id = ?", shopID).
		Count(&clients)

	c.JSON(http.StatusOK, gin.H{
		"month":            finance.Summarize(monthTxs),
		"today":            finance.Summarize(todayTxs),
		"orders_by_status": byStatus,
		"open_orders":      openOrders,
		"low_stock_count":  lowStock,
		"client_count":     clients,
		"generated_at":     now,
	})
}
