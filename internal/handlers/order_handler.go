package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/leo-otica/otica-erp/internal/dto"
	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/httpresp"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/notify"
	ucOrder "github.com/leo-otica/otica-erp/internal/usecase/order"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	createSale *ucOrder.CreateSale
	create     *ucOrder.CreateOrder
	update     *ucOrder.UpdateOrder
	advance    *ucOrder.AdvanceOrder
	delete     *ucOrder.DeleteOrder
	list       *ucOrder.ListOrders
	notify     *notify.Notifier
}

func NewOrderHandler(
	createSale *ucOrder.CreateSale,
	create *ucOrder.CreateOrder,
	update *ucOrder.UpdateOrder,
	advance *ucOrder.AdvanceOrder,
	delete_ *ucOrder.DeleteOrder,
	list *ucOrder.ListOrders,
	notifier *notify.Notifier,
) *OrderHandler {
	return &OrderHandler{
		createSale: createSale,
		create:     create,
		update:     update,
		advance:    advance,
		delete:     delete_,
		list:       list,
		notify:     notifier,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SaleLineRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateSaleRequest struct {
	ClientID       *uint             `json:"client_id"`
	ClientName     string            `json:"client_name"`
	Lines          []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaymentMethod  string            `json:"payment_method" binding:"omitempty,oneof=credit_card debit_card cash pix boleto"`
	DeliveryDate   string            `json:"delivery_date"`
	IdempotencyKey string            `json:"idempotency_key"`
}

type CreateOrderRequest struct {
	ClientID     *uint           `json:"client_id"`
	ClientName   string          `json:"client_name"`
	Items        []string        `json:"items"`
	TotalValue   decimal.Decimal `json:"total_value"`
	DeliveryDate string          `json:"delivery_date"`
}

// sem campo de status: o status só anda pelo endpoint de advance
type UpdateOrderRequest struct {
	ClientName   *string          `json:"client_name,omitempty"`
	Items        []string         `json:"items,omitempty"`
	TotalValue   *decimal.Decimal `json:"total_value,omitempty"`
	DeliveryDate *string          `json:"delivery_date,omitempty"`
}

// ======================================================
// HELPERS
// ======================================================

func writeOrderError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "order_operation_failed", "Erro ao processar a O.S.")
		return
	}

	switch code {
	case "order_not_found", "client_not_found", "product_not_found":
		httperr.NotFound(c, code, "Registro não encontrado.")
	case "insufficient_stock":
		httperr.Conflict(c, code, "Estoque insuficiente para um dos itens.")
	default:
		httperr.BadRequest(c, code, "Operação inválida.")
	}
}

func toOrderDTO(os models.ServiceOrder) dto.OrderListDTO {
	return dto.OrderListDTO{
		ID:           os.ID,
		ClientID:     os.ClientID,
		ClientName:   os.ClientName,
		Items:        os.Items,
		TotalValue:   os.TotalValue,
		Status:       os.Status,
		CreatedAt:    os.CreatedAt,
		DeliveryDate: os.DeliveryDate,
		DeliveredAt:  os.DeliveredAt,
	}
}

// ======================================================
// FINISH SALE (POS)
// ======================================================

func (h *OrderHandler) CreateSale(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	lines := make([]ucOrder.SaleLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, ucOrder.SaleLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}

	os, err := h.createSale.Execute(c.Request.Context(), ucOrder.CreateSaleInput{
		ShopID:         shopID,
		UserID:         userID,
		ClientID:       req.ClientID,
		ClientName:     strings.TrimSpace(req.ClientName),
		Lines:          lines,
		PaymentMethod:  req.PaymentMethod,
		DeliveryDate:   req.DeliveryDate,
		IdempotencyKey: strings.TrimSpace(req.IdempotencyKey),
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "orders")
	h.notify.Publish(c.Request.Context(), shopID, "transactions")
	h.notify.Publish(c.Request.Context(), shopID, "products")

	c.JSON(http.StatusCreated, os)
}

// ======================================================
// CREATE (O.S. avulsa)
// ======================================================

func (h *OrderHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	os, err := h.create.Execute(c.Request.Context(), ucOrder.CreateOrderInput{
		ShopID:       shopID,
		UserID:       userID,
		ClientID:     req.ClientID,
		ClientName:   strings.TrimSpace(req.ClientName),
		Items:        req.Items,
		TotalValue:   req.TotalValue,
		DeliveryDate: req.DeliveryDate,
	})
	if err != nil {
		writeOrderError(c, err)
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "orders")
	c.JSON(http.StatusCreated, os)
}

// ======================================================
// LIST
// ======================================================

func (h *OrderHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	orders, err := h.list.Execute(
		c.Request.Context(),
		shopID,
		c.Query("status"),
		c.Query("query"),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_orders", "Erro ao listar ordens de serviço.")
		return
	}

	out := make([]dto.OrderListDTO, 0, len(orders))
	for _, os := range orders {
		out = append(out, toOrderDTO(os))
	}

	httpresp.List(c, out)
}

// ======================================================
// UPDATE
// ======================================================

func (h *OrderHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	os, err := h.update.Execute(
		c.Request.Context(),
		shopID,
		userID,
		uint(orderID),
		ucOrder.UpdateOrderInput{
			ClientName:   req.ClientName,
			Items:        req.Items,
			TotalValue:   req.TotalValue,
			DeliveryDate: req.DeliveryDate,
		},
	)
	if err != nil {
		writeOrderError(c, err)
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "orders")
	c.JSON(http.StatusOK, os)
}

// ======================================================
// ADVANCE (um passo para frente, nunca pula etapa)
// ======================================================

func (h *OrderHandler) Advance(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	os, err := h.advance.Execute(c.Request.Context(), shopID, userID, uint(orderID))
	if err != nil {
		writeOrderError(c, err)
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "orders")
	c.JSON(http.StatusOK, os)
}

// ======================================================
// DELETE
// ======================================================

func (h *OrderHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), shopID, userID, uint(orderID)); err != nil {
		writeOrderError(c, err)
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "orders")
	c.JSON(http.StatusOK, gin.H{"deleted": orderID})
}
