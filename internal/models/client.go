package models

import "time"

// Cliente da ótica, sem login, vinculado à loja
type Client struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	LastVisit *time.Time `json:"last_visit"`
	NPSScore  *int       `json:"nps_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
