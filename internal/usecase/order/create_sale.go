package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/leo-otica/otica-erp/internal/audit"
	domain "github.com/leo-otica/otica-erp/internal/domain/order"
	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type SaleLine struct {
	ProductID uint
	Quantity  int
}

type CreateSaleInput struct {
	ShopID uint
	UserID uint

	ClientID   *uint
	ClientName string

	Lines []SaleLine

	PaymentMethod string
	DeliveryDate  string

	// reenvio do mesmo terminal com a mesma chave devolve a O.S. existente
	IdempotencyKey string
}

// ======================================================
// USE CASE
// ======================================================

// CreateSale finaliza uma venda de balcão: grava a O.S., exatamente um
// lançamento de entrada no caixa e a baixa de estoque dos itens, tudo numa
// transação só.
type CreateSale struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSale(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateSale {
	return &CreateSale{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateSale) Execute(
	ctx context.Context,
	in CreateSaleInput,
) (*models.ServiceOrder, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	if len(in.Lines) == 0 {
		return nil, httperr.ErrBusiness("empty_cart")
	}
	for _, line := range in.Lines {
		if line.Quantity < 1 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}
	}

	key := in.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	if existing, err := uc.repo.FindOrderByKey(ctx, in.ShopID, key); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	clientName := in.ClientName
	if in.ClientID != nil {
		client, err := uc.repo.GetClientForShop(ctx, in.ShopID, *in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		clientName = client.Name
	}
	if clientName == "" {
		clientName = "Venda Balcão"
	}

	ids := make([]uint, 0, len(in.Lines))
	for _, line := range in.Lines {
		ids = append(ids, line.ProductID)
	}

	products, err := uc.repo.GetProductsForShop(ctx, in.ShopID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	total := decimal.Zero
	items := make([]string, 0, len(in.Lines))
	decrements := make([]domain.StockDecrement, 0, len(in.Lines))

	for _, line := range in.Lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, httperr.ErrBusiness("product_not_found")
		}

		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		item := p.Name
		if line.Quantity > 1 {
			item = fmt.Sprintf("%s x%d", p.Name, line.Quantity)
		}
		items = append(items, item)

		decrements = append(decrements, domain.StockDecrement{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	now := timezone.NowIn(shop.Timezone)

	var deliveryDate time.Time
	if in.DeliveryDate != "" {
		deliveryDate, err = time.ParseInLocation(
			"2006-01-02",
			in.DeliveryDate,
			timezone.Location(shop.Timezone),
		)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_delivery_date")
		}
	} else {
		deliveryDate = now.AddDate(0, 0, 7)
	}

	os := &models.ServiceOrder{
		ShopID:         in.ShopID,
		ClientID:       in.ClientID,
		ClientName:     clientName,
		Items:          items,
		TotalValue:     total,
		Status:         string(domain.InitialStatus()),
		DeliveryDate:   &deliveryDate,
		IdempotencyKey: &key,
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCash
	}

	makeTx := func(created *models.ServiceOrder) *models.Transaction {
		return &models.Transaction{
			ShopID:         created.ShopID,
			Description:    fmt.Sprintf("Venda O.S. #%d - %s", created.ID, created.ClientName),
			Amount:         created.TotalValue,
			Type:           models.TransactionIncome,
			Category:       "Vendas",
			Date:           now,
			PaymentMethod:  paymentMethod,
			Status:         models.TransactionPaid,
			ServiceOrderID: &created.ID,
		}
	}

	if err := uc.repo.CreateSale(ctx, os, makeTx, decrements); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &in.UserID,
		Action:   "sale_finalized",
		Entity:   "service_order",
		EntityID: &os.ID,
		Metadata: map[string]any{"total": total.StringFixed(2)},
	})

	return os, nil
}
