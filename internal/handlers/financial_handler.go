package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/finance"
	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/timezone"
)

type FinancialHandler struct {
	db *gorm.DB
}

func NewFinancialHandler(db *gorm.DB) *FinancialHandler {
	return &FinancialHandler{db: db}
}

// Summary agrega entradas, saídas e saldo do período, centavo a centavo.
func (h *FinancialHandler) Summary(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Loja não encontrada.")
		return
	}

	loc := timezone.Location(shop.Timezone)

	q := h.db.Where("shop_id = ?", shopID)

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Data inicial inválida (use AAAA-MM-DD).")
			return
		}
		q = q.Where("date >= ?", from)
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.ParseInLocation("2006-01-02", toStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Data final inválida (use AAAA-MM-DD).")
			return
		}
		q = q.Where("date < ?", to.Add(24*time.Hour))
	}

	var txs []models.Transaction
	if err := q.Find(&txs).Error; err != nil {
		httperr.Internal(c, "failed_to_summarize", "Erro ao calcular o resumo financeiro.")
		return
	}

	c.JSON(http.StatusOK, finance.Summarize(txs))
}
