package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/export"
	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/httpresp"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/notify"
	"github.com/leo-otica/otica-erp/internal/timezone"
)

type TransactionHandler struct {
	db     *gorm.DB
	notify *notify.Notifier
}

func NewTransactionHandler(db *gorm.DB, notifier *notify.Notifier) *TransactionHandler {
	return &TransactionHandler{db: db, notify: notifier}
}

// --------- Requests ---------

type CreateTransactionRequest struct {
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=income expense"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=credit_card debit_card cash pix boleto"`
	Status        string          `json:"status" binding:"omitempty,oneof=paid pending"`
}

type UpdateTransactionRequest struct {
	Description   *string          `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Date          *string          `json:"date,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty" binding:"omitempty,oneof=credit_card debit_card cash pix boleto"`
	Status        *string          `json:"status,omitempty" binding:"omitempty,oneof=paid pending"`
}

// ======================================================
// HELPERS
// ======================================================

// filtros independentes combinados por E lógico, como em todas as listagens
func (h *TransactionHandler) filteredQuery(c *gin.Context, shopID uint, tz string) *gorm.DB {
	q := h.db.Where("shop_id = ?", shopID)

	if t := strings.ToLower(strings.TrimSpace(c.Query("type"))); t != "" {
		q = q.Where("type = ?", t)
	}
	if s := strings.ToLower(strings.TrimSpace(c.Query("status"))); s != "" {
		q = q.Where("status = ?", s)
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("LOWER(category) = LOWER(?)", cat)
	}
	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+query+"%")
	}

	loc := timezone.Location(tz)
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.ParseInLocation("2006-01-02", fromStr, loc); err == nil {
			q = q.Where("date >= ?", from)
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.ParseInLocation("2006-01-02", toStr, loc); err == nil {
			q = q.Where("date < ?", to.Add(24*time.Hour))
		}
	}

	return q
}

func (h *TransactionHandler) shopOf(c *gin.Context, shopID uint) (*models.Shop, bool) {
	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Loja não encontrada.")
		return nil, false
	}
	return &shop, true
}

// ======================================================
// LIST
// ======================================================
func (h *TransactionHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	shop, ok := h.shopOf(c, shopID)
	if !ok {
		return
	}

	var txs []models.Transaction
	if err := h.filteredQuery(c, shopID, shop.Timezone).
		Order("date DESC, id DESC").
		Find(&txs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_transactions", "Erro ao listar lançamentos.")
		return
	}

	httpresp.List(c, txs)
}

// ======================================================
// CREATE
// ======================================================
func (h *TransactionHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	shop, ok := h.shopOf(c, shopID)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Descrição e valor são obrigatórios.")
		return
	}

	if req.Amount.IsNegative() {
		httperr.BadRequest(c, "invalid_amount", "O valor não pode ser negativo.")
		return
	}

	date := timezone.NowIn(shop.Timezone)
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, timezone.Location(shop.Timezone))
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida (use AAAA-MM-DD).")
			return
		}
		date = parsed
	}

	tx := models.Transaction{
		ShopID:        shopID,
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          req.Type,
		Category:      req.Category,
		Date:          date,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
	}
	if tx.Category == "" {
		tx.Category = "Outros"
	}
	if tx.PaymentMethod == "" {
		tx.PaymentMethod = models.PaymentCash
	}
	if tx.Status == "" {
		tx.Status = models.TransactionPaid
	}

	if err := h.db.Create(&tx).Error; err != nil {
		httperr.Internal(c, "failed_to_create_transaction", "Erro ao lançar no caixa.")
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "transactions")
	c.JSON(http.StatusCreated, tx)
}

// ======================================================
// UPDATE
// ======================================================
func (h *TransactionHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	shop, ok := h.shopOf(c, shopID)
	if !ok {
		return
	}

	var tx models.Transaction
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&tx).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "transaction_not_found", "Lançamento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_transaction", "Erro ao buscar lançamento.")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Description != nil {
		if *req.Description == "" {
			httperr.BadRequest(c, "invalid_description", "Descrição não pode ficar vazia.")
			return
		}
		tx.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			httperr.BadRequest(c, "invalid_amount", "O valor não pode ser negativo.")
			return
		}
		tx.Amount = *req.Amount
	}
	if req.Category != nil {
		tx.Category = *req.Category
	}
	if req.Date != nil {
		parsed, err := time.ParseInLocation("2006-01-02", *req.Date, timezone.Location(shop.Timezone))
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida (use AAAA-MM-DD).")
			return
		}
		tx.Date = parsed
	}
	if req.PaymentMethod != nil {
		tx.PaymentMethod = *req.PaymentMethod
	}
	if req.Status != nil {
		tx.Status = *req.Status
	}

	if err := h.db.Save(&tx).Error; err != nil {
		httperr.Internal(c, "failed_to_update_transaction", "Erro ao atualizar lançamento.")
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "transactions")
	c.JSON(http.StatusOK, tx)
}

// ======================================================
// DELETE
// ======================================================
func (h *TransactionHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var tx models.Transaction
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&tx).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "transaction_not_found", "Lançamento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_transaction", "Erro ao buscar lançamento.")
		return
	}

	if err := h.db.Delete(&tx).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_transaction", "Erro ao excluir lançamento.")
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "transactions")
	c.JSON(http.StatusOK, gin.H{"deleted": tx.ID})
}

// ======================================================
// EXPORT CSV (mesmos filtros da listagem)
// ======================================================
func (h *TransactionHandler) Export(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	shop, ok := h.shopOf(c, shopID)
	if !ok {
		return
	}

	var txs []models.Transaction
	if err := h.filteredQuery(c, shopID, shop.Timezone).
		Order("date DESC, id DESC").
		Find(&txs).Error; err != nil {

		httperr.Internal(c, "failed_to_export", "Erro ao exportar relatório.")
		return
	}

	content, err := export.Transactions(txs)
	if err != nil {
		httperr.Internal(c, "failed_to_export", "Erro ao gerar o CSV.")
		return
	}

	filename := export.Filename(timezone.NowIn(shop.Timezone))

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}
