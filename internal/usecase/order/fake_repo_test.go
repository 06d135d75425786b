package order_test

import (
	"context"
	"errors"
	"time"

	domain "github.com/leo-otica/otica-erp/internal/domain/order"
	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/models"
)

var errNotFound = errors.New("registro não encontrado")

// fakeRepo guarda tudo em mapas, emulando a semântica transacional do
// repositório gorm: em caso de falha na venda nada é persistido.
type fakeRepo struct {
	shops    map[uint]*models.Shop
	clients  map[uint]*models.Client
	products map[uint]*models.Product
	orders   map[uint]*models.ServiceOrder
	txs      []models.Transaction

	nextOrderID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:    make(map[uint]*models.Shop),
		clients:  make(map[uint]*models.Client),
		products: make(map[uint]*models.Product),
		orders:   make(map[uint]*models.ServiceOrder),
	}
}

func (r *fakeRepo) GetShopByID(_ context.Context, id uint) (*models.Shop, error) {
	shop, ok := r.shops[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *shop
	return &cp, nil
}

func (r *fakeRepo) GetClientForShop(_ context.Context, shopID, clientID uint) (*models.Client, error) {
	c, ok := r.clients[clientID]
	if !ok || c.ShopID != shopID {
		return nil, errNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) TouchClientVisit(_ context.Context, clientID uint, when time.Time) error {
	c, ok := r.clients[clientID]
	if !ok {
		return errNotFound
	}
	t := when
	c.LastVisit = &t
	return nil
}

func (r *fakeRepo) GetProductsForShop(_ context.Context, shopID uint, ids []uint) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.ShopID == shopID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindOrderByKey(_ context.Context, shopID uint, key string) (*models.ServiceOrder, error) {
	for _, os := range r.orders {
		if os.ShopID == shopID && os.IdempotencyKey != nil && *os.IdempotencyKey == key {
			cp := *os
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateSale(
	_ context.Context,
	os *models.ServiceOrder,
	makeTx func(*models.ServiceOrder) *models.Transaction,
	decrements []domain.StockDecrement,
) error {

	for _, dec := range decrements {
		p, ok := r.products[dec.ProductID]
		if !ok || p.ShopID != os.ShopID || p.Stock < dec.Quantity {
			return httperr.ErrBusiness("insufficient_stock")
		}
	}

	r.nextOrderID++
	os.ID = r.nextOrderID
	os.CreatedAt = time.Now()

	cp := *os
	r.orders[os.ID] = &cp

	r.txs = append(r.txs, *makeTx(os))

	for _, dec := range decrements {
		r.products[dec.ProductID].Stock -= dec.Quantity
	}

	if os.ClientID != nil {
		if c, ok := r.clients[*os.ClientID]; ok {
			t := os.CreatedAt
			c.LastVisit = &t
		}
	}

	return nil
}

func (r *fakeRepo) CreateOrder(_ context.Context, os *models.ServiceOrder) error {
	r.nextOrderID++
	os.ID = r.nextOrderID
	os.CreatedAt = time.Now()

	cp := *os
	r.orders[os.ID] = &cp
	return nil
}

func (r *fakeRepo) GetOrderForShop(_ context.Context, orderID, shopID uint) (*models.ServiceOrder, error) {
	os, ok := r.orders[orderID]
	if !ok || os.ShopID != shopID {
		return nil, errNotFound
	}
	cp := *os
	return &cp, nil
}

func (r *fakeRepo) UpdateOrder(_ context.Context, os *models.ServiceOrder) error {
	if _, ok := r.orders[os.ID]; !ok {
		return errNotFound
	}
	cp := *os
	r.orders[os.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteOrder(_ context.Context, os *models.ServiceOrder) error {
	delete(r.orders, os.ID)
	return nil
}

func (r *fakeRepo) ListOrders(_ context.Context, shopID uint, filter domain.ListFilter) ([]models.ServiceOrder, error) {
	var out []models.ServiceOrder
	for _, os := range r.orders {
		if os.ShopID != shopID {
			continue
		}
		if filter.Status != "" && os.Status != filter.Status {
			continue
		}
		out = append(out, *os)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// touchFailRepo simula a loja cujo update de last_visit falha.
type touchFailRepo struct {
	*fakeRepo
}

func (r *touchFailRepo) TouchClientVisit(context.Context, uint, time.Time) error {
	return errors.New("update de last_visit falhou")
}
