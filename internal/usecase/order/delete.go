package order

import (
	"context"

	"github.com/leo-otica/otica-erp/internal/audit"
	domain "github.com/leo-otica/otica-erp/internal/domain/order"
	"github.com/leo-otica/otica-erp/internal/httperr"
)

type DeleteOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteOrder {
	return &DeleteOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteOrder) Execute(
	ctx context.Context,
	shopID uint,
	userID uint,
	orderID uint,
) error {

	os, err := uc.repo.GetOrderForShop(ctx, orderID, shopID)
	if err != nil {
		return httperr.ErrBusiness("order_not_found")
	}

	if err := uc.repo.DeleteOrder(ctx, os); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "order_deleted",
		Entity:   "service_order",
		EntityID: &os.ID,
	})

	return nil
}
