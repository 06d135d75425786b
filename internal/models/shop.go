package models

import "time"

type Shop struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`

	// Recall: clientes sem visita há recall_days entram na fila de contato
	RecallDays    int    `gorm:"default:180" json:"recall_days"`
	RecallMessage string `gorm:"size:500" json:"recall_message"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
