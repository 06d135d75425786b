package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/httpresp"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/notify"
	"github.com/leo-otica/otica-erp/internal/timezone"
	"github.com/leo-otica/otica-erp/internal/validators"
)

type ClientHandler struct {
	db     *gorm.DB
	notify *notify.Notifier
}

func NewClientHandler(db *gorm.DB, notifier *notify.Notifier) *ClientHandler {
	return &ClientHandler{db: db, notify: notifier}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

type RegisterVisitRequest struct {
	NPSScore *int `json:"nps_score"`
}

// ======================================================
// LIST
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("shop_id = ?", shopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ?",
			like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nome e telefone são obrigatórios.")
		return
	}

	if !validators.IsValidPhone(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido (use DDD + número).")
		return
	}

	client := models.Client{
		ShopID:  shopID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao cadastrar cliente.")
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "clients")
	c.JSON(http.StatusCreated, client)
}

// ======================================================
// UPDATE
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ficar vazio.")
			return
		}
		client.Name = *req.Name
	}
	if req.Phone != nil {
		if !validators.IsValidPhone(*req.Phone) {
			httperr.BadRequest(c, "invalid_phone", "Telefone inválido (use DDD + número).")
			return
		}
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "clients")
	c.JSON(http.StatusOK, client)
}

// ======================================================
// REGISTER VISIT (alimenta o recall)
// ======================================================
func (h *ClientHandler) RegisterVisit(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Loja não encontrada.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	var req RegisterVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.NPSScore != nil {
		if *req.NPSScore < 0 || *req.NPSScore > 10 {
			httperr.BadRequest(c, "invalid_nps", "NPS deve estar entre 0 e 10.")
			return
		}
		client.NPSScore = req.NPSScore
	}

	now := timezone.NowIn(shop.Timezone)
	client.LastVisit = &now

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Erro ao registrar visita.")
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "clients")
	c.JSON(http.StatusOK, client)
}

// ======================================================
// DELETE
// ======================================================
func (h *ClientHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao excluir cliente.")
		return
	}

	h.notify.Publish(c.Request.Context(), shopID, "clients")
	c.JSON(http.StatusOK, gin.H{"deleted": client.ID})
}
