package recall

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/leo-otica/otica-erp/internal/audit"
	"github.com/leo-otica/otica-erp/internal/models"
	"github.com/leo-otica/otica-erp/internal/timezone"
)

// Scheduler roda a varredura diária de recall e registra o resultado na
// trilha de auditoria de cada loja.
type Scheduler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cron  *cron.Cron
}

func NewScheduler(db *gorm.DB, dispatcher *audit.Dispatcher) *Scheduler {
	return &Scheduler{
		db:    db,
		audit: dispatcher,
		cron:  cron.New(),
	}
}

func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc("0 8 * * *", s.Scan); err != nil {
		log.Printf("recall: failed to schedule scan: %v", err)
		return
	}
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Scan conta, por loja, os clientes na janela de recall.
func (s *Scheduler) Scan() {
	var shops []models.Shop
	if err := s.db.Find(&shops).Error; err != nil {
		log.Printf("recall: failed to list shops: %v", err)
		return
	}

	for _, shop := range shops {
		var clients []models.Client
		if err := s.db.
			Where("shop_id = ?", shop.ID).
			Find(&clients).Error; err != nil {

			log.Printf("recall: failed to list clients for shop %d: %v", shop.ID, err)
			continue
		}

		now := timezone.NowIn(shop.Timezone)
		due := Due(clients, now, shop.RecallDays)

		s.audit.Dispatch(audit.Event{
			ShopID: shop.ID,
			Action: "recall_scan",
			Entity: "client",
			Metadata: map[string]any{
				"due_count":   len(due),
				"recall_days": shop.RecallDays,
			},
		})
	}
}
