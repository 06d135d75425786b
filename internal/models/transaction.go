package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"

	TransactionPaid    = "paid"
	TransactionPending = "pending"
)

const (
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentCash       = "cash"
	PaymentPix        = "pix"
	PaymentBoleto     = "boleto"
)

type Transaction struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`

	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2)" json:"amount"`

	Type     string `gorm:"size:10;not null" json:"type"`
	Category string `gorm:"size:50;default:'Outros'" json:"category"`

	Date          time.Time `json:"date"`
	PaymentMethod string    `gorm:"size:20" json:"payment_method"`
	Status        string    `gorm:"size:10;default:'paid'" json:"status"`

	// preenchido quando o lançamento nasce da finalização de uma venda
	ServiceOrderID *uint `json:"service_order_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
