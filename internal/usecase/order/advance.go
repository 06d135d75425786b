package order

import (
	"context"
	"log"

	"github.com/leo-otica/otica-erp/internal/audit"
	domain "github.com/leo-otica/otica-erp/internal/domain/order"
	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/timezone"
)

type AdvanceOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAdvanceOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AdvanceOrder {
	return &AdvanceOrder{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AdvanceOrder) Execute(
	ctx context.Context,
	shopID uint,
	userID uint,
	orderID uint,
) (*models.ServiceOrder, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	os, err := uc.repo.GetOrderForShop(ctx, orderID, shopID)
	if err != nil {
		return nil, httperr.ErrBusiness("order_not_found")
	}

	previous := os.Status

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Advance(os, now); err != nil {
		return nil, err
	}

	// entregue continua entregue; nada a persistir
	if os.Status == previous {
		return os, nil
	}

	if err := uc.repo.UpdateOrder(ctx, os); err != nil {
		return nil, err
	}

	// a entrega conta como visita do cliente (alimenta o recall); o status
	// já foi gravado, então a falha aqui não derruba a operação
	if os.Status == string(domain.StatusDelivered) && os.ClientID != nil {
		if err := uc.repo.TouchClientVisit(ctx, *os.ClientID, now); err != nil {
			log.Printf("advance: failed to touch client %d visit: %v", *os.ClientID, err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "order_status_advanced",
		Entity:   "service_order",
		EntityID: &os.ID,
		Metadata: map[string]any{"from": previous, "to": os.Status},
	})

	return os, nil
}
