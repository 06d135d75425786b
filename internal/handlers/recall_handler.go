package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/middleware"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/recall"
	"github.com/leo-otica/otica-erp/internal/timezone"
	"github.com/leo-otica/otica-erp/internal/whatsapp"
)

type RecallHandler struct {
	db *gorm.DB
}

func NewRecallHandler(db *gorm.DB) *RecallHandler {
	return &RecallHandler{db: db}
}

type recallEntry struct {
	Client       models.Client `json:"client"`
	WhatsAppLink string        `json:"whatsapp_link"`
}

// List devolve os clientes na janela de recall, cada um com o deep link
// do WhatsApp já montado com a mensagem da loja.
func (h *RecallHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Loja não encontrada.")
		return
	}

	var clients []models.Client
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("last_visit ASC NULLS FIRST").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	now := timezone.NowIn(shop.Timezone)
	due := recall.Due(clients, now, shop.RecallDays)

	entries := make([]recallEntry, 0, len(due))
	for _, client := range due {
		entries = append(entries, recallEntry{
			Client:       client,
			WhatsAppLink: whatsapp.Link(client.Phone, client.Name, shop.RecallMessage),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"recall_days": shop.RecallDays,
		"total":       len(entries),
		"clients":     entries,
	})
}
