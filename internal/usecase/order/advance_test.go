package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/models"
	usecase "github.com/leo-otica/otica-erp/internal/usecase/order"
)

func seedOrder(repo *fakeRepo, clientID *uint) *models.ServiceOrder {
	os := &models.ServiceOrder{
		ShopID:     1,
		ClientID:   clientID,
		ClientName: "Ana Silva",
		Items:      []string{"Armação Aviador"},
		Status:     "pending",
	}
	_ = repo.CreateOrder(context.Background(), os)
	return os
}

func TestAdvanceStepsOneStatusAtATime(t *testing.T) {
	repo := seedRepo()
	os := seedOrder(repo, nil)
	uc := usecase.NewAdvanceOrder(repo, nil)

	expected := []string{"lab_sent", "assembly", "quality_check", "ready", "delivered"}

	for _, want := range expected {
		got, err := uc.Execute(context.Background(), 1, 1, os.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
	}

	stored := repo.orders[os.ID]
	assert.Equal(t, "delivered", stored.Status)
	assert.NotNil(t, stored.DeliveredAt)
}

func TestAdvanceAtDeliveredIsNoOp(t *testing.T) {
	repo := seedRepo()
	os := seedOrder(repo, nil)
	uc := usecase.NewAdvanceOrder(repo, nil)

	for i := 0; i < 5; i++ {
		_, err := uc.Execute(context.Background(), 1, 1, os.ID)
		require.NoError(t, err)
	}
	deliveredAt := repo.orders[os.ID].DeliveredAt
	require.NotNil(t, deliveredAt)

	got, err := uc.Execute(context.Background(), 1, 1, os.ID)
	require.NoError(t, err)

	assert.Equal(t, "delivered", got.Status)
	assert.Equal(t, deliveredAt, repo.orders[os.ID].DeliveredAt)
}

func TestAdvanceToDeliveredTouchesClientVisit(t *testing.T) {
	repo := seedRepo()
	clientID := uint(10)
	os := seedOrder(repo, &clientID)
	os.Status = "ready"
	require.NoError(t, repo.UpdateOrder(context.Background(), os))

	uc := usecase.NewAdvanceOrder(repo, nil)

	got, err := uc.Execute(context.Background(), 1, 1, os.ID)
	require.NoError(t, err)

	assert.Equal(t, "delivered", got.Status)
	assert.NotNil(t, repo.clients[10].LastVisit)
}

func TestAdvanceBeforeDeliveryDoesNotTouchVisit(t *testing.T) {
	repo := seedRepo()
	clientID := uint(10)
	os := seedOrder(repo, &clientID)

	uc := usecase.NewAdvanceOrder(repo, nil)

	_, err := uc.Execute(context.Background(), 1, 1, os.ID)
	require.NoError(t, err)

	assert.Nil(t, repo.clients[10].LastVisit)
}

func TestAdvanceUnknownOrder(t *testing.T) {
	repo := seedRepo()
	uc := usecase.NewAdvanceOrder(repo, nil)

	_, err := uc.Execute(context.Background(), 1, 1, 999)

	assert.True(t, httperr.IsBusiness(err, "order_not_found"))
}

func TestAdvanceOrderFromAnotherShopIsInvisible(t *testing.T) {
	repo := seedRepo()
	repo.shops[2] = &models.Shop{ID: 2, Name: "Outra Ótica", Timezone: "America/Sao_Paulo"}
	os := seedOrder(repo, nil)

	uc := usecase.NewAdvanceOrder(repo, nil)

	_, err := uc.Execute(context.Background(), 2, 1, os.ID)

	assert.True(t, httperr.IsBusiness(err, "order_not_found"))
}

// o status já foi gravado quando a visita é registrada; a falha no
// registro da visita não pode desfazer nem esconder a entrega
func TestAdvanceDeliversEvenWhenVisitTouchFails(t *testing.T) {
	repo := seedRepo()
	clientID := uint(10)
	os := seedOrder(repo, &clientID)
	os.Status = "ready"
	require.NoError(t, repo.UpdateOrder(context.Background(), os))

	uc := usecase.NewAdvanceOrder(&touchFailRepo{repo}, nil)

	got, err := uc.Execute(context.Background(), 1, 1, os.ID)
	require.NoError(t, err)

	assert.Equal(t, "delivered", got.Status)
	assert.Equal(t, "delivered", repo.orders[os.ID].Status)
	assert.Nil(t, repo.clients[10].LastVisit)
}

func TestAdvanceRejectsUnknownStatus(t *testing.T) {
	repo := seedRepo()
	os := seedOrder(repo, nil)
	os.Status = "lost"
	require.NoError(t, repo.UpdateOrder(context.Background(), os))

	uc := usecase.NewAdvanceOrder(repo, nil)

	_, err := uc.Execute(context.Background(), 1, 1, os.ID)

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
