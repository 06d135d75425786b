package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/httpresp"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/notify"
)

type ProductHandler struct {
	db     *gorm.DB
	notify *notify.Notifier
}

func NewProductHandler(db *gorm.DB, notifier *notify.Notifier) *ProductHandler {
	return &ProductHandler{db: db, notify: notifier}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	SKU       string          `json:"sku" binding:"required"`
	Type      string          `json:"type" binding:"required,oneof=frame lens contact_lens accessory"`
	Brand     string          `json:"brand"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
}

type UpdateProductRequest struct {
	Name      *string          `json:"name,omitempty"`
	SKU       *string          `json:"sku,omitempty"`
	Type      *string          `json:"type,omitempty" binding:"omitempty,oneof=frame lens contact_lens accessory"`
	Brand     *string          `json:"brand,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	CostPrice *decimal.Decimal `json:"cost_price,omitempty"`
	Stock     *int             `json:"stock,omitempty"`
	MinStock  *int             `json:"min_stock,omitempty"`
}

// ======================================================
// LIST
// ======================================================
func (h *ProductHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	productType := strings.ToLower(strings.TrimSpace(c.Query("type")))
	lowStockStr := strings.TrimSpace(c.Query("low_stock"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("shop_id = ?", shopID)

	if productType != "" {
		q = q.Where("type = ?", productType)
	}

	if lowStockStr == "true" {
		q = q.Where("stock <= min_stock")
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(brand) LIKE ?",
			like, like, like,
		)
	}

	var products []models.Product
	if err := q.
		Order("id ASC").
		Find(&products).Error; err != nil {

		httperr.Internal(c, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}

	// low_stock é derivado a cada leitura, nunca armazenado
	for i := range products {
		products[i].LowStock = products[i].IsLowStock()
	}

	httpresp.List(c, products)
}

// ======================================================
// CREATE
// ======================================================
func (h *ProductHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	product := models.Product{
		ShopID:    shopID,
		Name:      req.Name,
		SKU:       strings.TrimSpace(req.SKU),
		Type:      req.Type,
		Brand:     req.Brand,
		Price:     req.Price,
		CostPrice: req.CostPrice,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
	}

	// unicidade do SKU é papel do banco; duplicata volta como conflito
	if err := h.db.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "sku_already_exists", "Já existe um produto com esse SKU.")
			return
		}
		httperr.Internal(c, "failed_to_create_product", "Erro ao cadastrar produto.")
		return
	}

	product.LowStock = product.IsLowStock()

	h.notify.Publish(c.Request.Context(), shopID, "products")
	c.JSON(http.StatusCreated, product)
}

// ======================================================
// UPDATE
// ======================================================
func (h *ProductHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar produto.")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SKU != nil {
		product.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Type != nil {
		product.Type = *req.Type
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}

	if err := h.db.Save(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "sku_already_exists", "Já existe um produto com esse SKU.")
			return
		}
		httperr.Internal(c, "failed_to_update_product", "Erro ao atualizar produto.")
		return
	}

	product.LowStock = product.IsLowStock()

	h.notify.Publish(c.Request.Context(), shopID, "products")
	c.JSON(http.StatusOK, product)
}

// ======================================================
// DELETE
// ======================================================
func (h *ProductHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&product).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Erro ao buscar produto.")
		return
	}

	if err := h.db.Delete(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_product", "Erro ao excluir produto.")
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "products")
	c.JSON(http.StatusOK, gin.H{"deleted": product.ID})
}
