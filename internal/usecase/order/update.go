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

// UpdateOrderInput não tem campo de status de propósito: o status só anda
// pelo Advance, um passo por vez.
type UpdateOrderInput struct {
	ClientName   *string
	Items        []string
	TotalValue   *decimal.Decimal
	DeliveryDate *string
}

type UpdateOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateOrder {
	return &UpdateOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateOrder) Execute(
	ctx context.Context,
	shopID uint,
	userID uint,
	orderID uint,
	in UpdateOrderInput,
) (*models.ServiceOrder, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	os, err := uc.repo.GetOrderForShop(ctx, orderID, shopID)
	if err != nil {
		return nil, httperr.ErrBusiness("order_not_found")
	}

	if in.ClientName != nil {
		if *in.ClientName == "" {
			return nil, httperr.ErrBusiness("missing_client_name")
		}
		os.ClientName = *in.ClientName
	}

	if in.Items != nil {
		os.Items = in.Items
	}

	if in.TotalValue != nil {
		if in.TotalValue.IsNegative() {
			return nil, httperr.ErrBusiness("invalid_total_value")
		}
		os.TotalValue = *in.TotalValue
	}

	if in.DeliveryDate != nil {
		if *in.DeliveryDate == "" {
			os.DeliveryDate = nil
		} else {
			parsed, err := time.ParseInLocation(
				"2006-01-02",
				*in.DeliveryDate,
				timezone.Location(shop.Timezone),
			)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_delivery_date")
			}
			os.DeliveryDate = &parsed
		}
	}

	if err := uc.repo.UpdateOrder(ctx, os); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "order_updated",
		Entity:   "service_order",
		EntityID: &os.ID,
	})

	return os, nil
}
