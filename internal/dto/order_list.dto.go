package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderListDTO struct {
	ID           uint            `json:"id"`
	ClientID     *uint           `json:"client_id"`
	ClientName   string          `json:"client_name"`
	Items        []string        `json:"items"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	DeliveryDate *time.Time      `json:"delivery_date"`
	DeliveredAt  *time.Time      `json:"delivered_at"`
}
