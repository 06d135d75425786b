package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leo-otica/otica-erp/internal/audit"
	domain "github.com/leo-otica/otica-erp/internal/domain/order"
	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/timezone"
)

type CreateOrderInput struct {
	ShopID uint
	UserID uint

	ClientID     *uint
	ClientName   string
	Items        []string
	TotalValue   decimal.Decimal
	DeliveryDate string
}

// CreateOrder registra uma O.S. avulsa, fora do fluxo de venda: não mexe
// em estoque nem em caixa.
type CreateOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateOrder {
	return &CreateOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateOrder) Execute(
	ctx context.Context,
	in CreateOrderInput,
) (*models.ServiceOrder, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
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
		return nil, httperr.ErrBusiness("missing_client_name")
	}

	if in.TotalValue.IsNegative() {
		return nil, httperr.ErrBusiness("invalid_total_value")
	}

	var deliveryDate *time.Time
	if in.DeliveryDate != "" {
		parsed, err := time.ParseInLocation(
			"2006-01-02",
			in.DeliveryDate,
			timezone.Location(shop.Timezone),
		)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_delivery_date")
		}
		deliveryDate = &parsed
	}

	os := &models.ServiceOrder{
		ShopID:       in.ShopID,
		ClientID:     in.ClientID,
		ClientName:   clientName,
		Items:        in.Items,
		TotalValue:   in.TotalValue,
		Status:       string(domain.InitialStatus()),
		DeliveryDate: deliveryDate,
	}

	if err := uc.repo.CreateOrder(ctx, os); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   in.ShopID,
		UserID:   &in.UserID,
		Action:   "order_created",
		Entity:   "service_order",
		EntityID: &os.ID,
	})

	return os, nil
}
