package order

import (
	"context"
	"strings"

	domain "github.com/leo-otica/otica-erp/internal/domain/order"
	"github.com/leo-otica/otica-erp/internal/models"
)

type ListOrders struct {
	repo domain.Repository
}

func NewListOrders(
	repo domain.Repository,
) *ListOrders {
	return &ListOrders{
		repo: repo,
	}
}

func (uc *ListOrders) Execute(
	ctx context.Context,
	shopID uint,
	status string,
	query string,
) ([]models.ServiceOrder, error) {

	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && !domain.IsValid(domain.Status(status)) {
		return []models.ServiceOrder{}, nil
	}

	return uc.repo.ListOrders(ctx, shopID, domain.ListFilter{
		Status: status,
		Query:  strings.TrimSpace(query),
	})
}
