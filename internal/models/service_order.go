package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceOrder struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`

	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	// nome denormalizado: a O.S. sobrevive à exclusão do cliente
	ClientName string `gorm:"size:100;not null" json:"client_name"`

	// descrições livres dos itens, não são referências de produto
	Items []string `gorm:"serializer:json" json:"items"`

	TotalValue decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_value"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	DeliveryDate *time.Time `json:"delivery_date"`
	DeliveredAt  *time.Time `json:"delivered_at"`

	// chave enviada pelo terminal na finalização da venda; impede O.S. duplicada
	IdempotencyKey *string `gorm:"size:36;uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
