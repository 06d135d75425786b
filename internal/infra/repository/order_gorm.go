package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/leo-otica/otica-erp/internal/domain/order"
	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *OrderGormRepository) GetShopByID(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *OrderGormRepository) GetClientForShop(
	ctx context.Context,
	shopID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", clientID, shopID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *OrderGormRepository) TouchClientVisit(
	ctx context.Context,
	clientID uint,
	when time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Update("last_visit", when).Error
}

// --------------------------------------------------
// Product
// --------------------------------------------------

func (r *OrderGormRepository) GetProductsForShop(
	ctx context.Context,
	shopID uint,
	ids []uint,
) ([]models.Product, error) {

	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND id IN ?", shopID, ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// --------------------------------------------------
// Order (sale finalization)
// --------------------------------------------------

func (r *OrderGormRepository) FindOrderByKey(
	ctx context.Context,
	shopID uint,
	key string,
) (*models.ServiceOrder, error) {

	var os models.ServiceOrder
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND idempotency_key = ?", shopID, key).
		First(&os).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &os, nil
}

func (r *OrderGormRepository) CreateSale(
	ctx context.Context,
	os *models.ServiceOrder,
	makeTx func(*models.ServiceOrder) *models.Transaction,
	decrements []domain.StockDecrement,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Create(os).Error; err != nil {
			return err
		}

		entry := makeTx(os)
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		for _, dec := range decrements {
			// baixa condicional: recusa a venda se o estoque não cobre o item
			res := tx.Model(&models.Product{}).
				Where("id = ? AND shop_id = ? AND stock >= ?", dec.ProductID, os.ShopID, dec.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", dec.Quantity))

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("insufficient_stock")
			}
		}

		if os.ClientID != nil {
			if err := tx.Model(&models.Client{}).
				Where("id = ?", *os.ClientID).
				Update("last_visit", os.CreatedAt).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// --------------------------------------------------
// Order (CRUD)
// --------------------------------------------------

func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	os *models.ServiceOrder,
) error {
	return r.db.WithContext(ctx).Create(os).Error
}

func (r *OrderGormRepository) GetOrderForShop(
	ctx context.Context,
	orderID uint,
	shopID uint,
) (*models.ServiceOrder, error) {

	var os models.ServiceOrder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", orderID, shopID).
		First(&os).Error; err != nil {
		return nil, err
	}

	return &os, nil
}

func (r *OrderGormRepository) UpdateOrder(
	ctx context.Context,
	os *models.ServiceOrder,
) error {
	return r.db.WithContext(ctx).Save(os).Error
}

func (r *OrderGormRepository) DeleteOrder(
	ctx context.Context,
	os *models.ServiceOrder,
) error {
	return r.db.WithContext(ctx).Delete(os).Error
}

func (r *OrderGormRepository) ListOrders(
	ctx context.Context,
	shopID uint,
	filter domain.ListFilter,
) ([]models.ServiceOrder, error) {

	q := r.db.WithContext(ctx).Where("shop_id = ?", shopID)

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where(
			"LOWER(client_name) LIKE LOWER(?) OR CAST(id AS TEXT) LIKE ?",
			like, like,
		)
	}

	var orders []models.ServiceOrder
	if err := q.
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

// Compile-time check
var _ domain.Repository = (*OrderGormRepository)(nil)
