package recall

import (
	"time"

	"github.com/leo-otica/otica-erp/internal/models"
)

const DefaultDays = 180

// IsDue diz se o cliente entrou na janela de recall: nunca visitou ou a
// última visita é mais antiga que o limite da loja.
func IsDue(c *models.Client, now time.Time, thresholdDays int) bool {
	if thresholdDays <= 0 {
		thresholdDays = DefaultDays
	}

	if c.LastVisit == nil {
		return true
	}

	cutoff := now.AddDate(0, 0, -thresholdDays)
	return c.LastVisit.Before(cutoff)
}

// Due filtra os clientes na janela de recall preservando a ordem.
func Due(clients []models.Client, now time.Time, thresholdDays int) []models.Client {
	due := make([]models.Client, 0)
	for i := range clients {
		if IsDue(&clients[i], now, thresholdDays) {
			due = append(due, clients[i])
		}
	}
	return due
}
