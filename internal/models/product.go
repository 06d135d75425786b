package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProductTypeFrame       = "frame"
	ProductTypeLens        = "lens"
	ProductTypeContactLens = "contact_lens"
	ProductTypeAccessory   = "accessory"
)

type Product struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"uniqueIndex:idx_shop_sku" json:"shop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	SKU   string `gorm:"size:50;not null;uniqueIndex:idx_shop_sku" json:"sku"`
	Type  string `gorm:"size:20;not null" json:"type"`
	Brand string `gorm:"size:100" json:"brand"`

	Price     decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	CostPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"cost_price"`

	Stock    int `json:"stock"`
	MinStock int `json:"min_stock"`

	// derivado, recalculado a cada leitura (nunca persistido)
	LowStock bool `gorm:"-" json:"low_stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
