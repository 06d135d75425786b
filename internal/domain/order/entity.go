package order

import (
	"time"

	"github.com/leo-otica/otica-erp/internal/httperr"
	"github.com/leo-otica/otica-erp/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Advance move a O.S. exatamente um passo na sequência. Em "delivered"
// é um no-op idempotente: não altera nada e não retorna erro.
func Advance(os *models.ServiceOrder, now time.Time) error {
	current := Status(os.Status)

	if IsTerminal(current) {
		return nil
	}

	next, ok := Next(current)
	if !ok {
		return httperr.ErrBusiness("invalid_state")
	}

	os.Status = string(next)
	if next == StatusDelivered {
		os.DeliveredAt = &now
	}
	return nil
}
