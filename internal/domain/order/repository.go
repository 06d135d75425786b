package order

import (
	"context"
	"time"

	"github.com/leo-otica/otica-erp/internal/models"
)

// StockDecrement baixa de estoque de um item do carrinho na finalização.
type StockDecrement struct {
	ProductID uint
	Quantity  int
}

// ListFilter: predicados independentes combinados por E lógico.
type ListFilter struct {
	Status string
	Query  string
}

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	// -------- Client --------
	GetClientForShop(
		ctx context.Context,
		shopID uint,
		clientID uint,
	) (*models.Client, error)

	TouchClientVisit(
		ctx context.Context,
		clientID uint,
		when time.Time,
	) error

	// -------- Product --------
	GetProductsForShop(
		ctx context.Context,
		shopID uint,
		ids []uint,
	) ([]models.Product, error)

	// -------- Order (sale finalization) --------

	// FindOrderByKey retorna (nil, nil) quando a chave nunca foi usada.
	FindOrderByKey(
		ctx context.Context,
		shopID uint,
		key string,
	) (*models.ServiceOrder, error)

	// CreateSale grava a O.S., o lançamento de entrada e as baixas de
	// estoque numa única transação de banco. makeTx roda depois do insert
	// da ordem, quando o ID já existe.
	CreateSale(
		ctx context.Context,
		os *models.ServiceOrder,
		makeTx func(*models.ServiceOrder) *models.Transaction,
		decrements []StockDecrement,
	) error

	// -------- Order (CRUD) --------
	CreateOrder(
		ctx context.Context,
		os *models.ServiceOrder,
	) error

	GetOrderForShop(
		ctx context.Context,
		orderID uint,
		shopID uint,
	) (*models.ServiceOrder, error)

	UpdateOrder(
		ctx context.Context,
		os *models.ServiceOrder,
	) error

	DeleteOrder(
		ctx context.Context,
		os *models.ServiceOrder,
	) error

	ListOrders(
		ctx context.Context,
		shopID uint,
		filter ListFilter,
	) ([]models.ServiceOrder, error)
}
