package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every stored record.
// ID is a UUID string; records imported from the legacy store keep their 24-hex ObjectID.
type Base struct {
	ID        string         `json:"id"       gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time      `json:"created"  gorm:"index"`
	UpdatedAt time.Time      `json:"modified"`
	DeletedAt gorm.DeletedAt `json:"-"        gorm:"index"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// Ordered is embedded by collections listed by their manual order key.
type Ordered struct {
	Order int `json:"order" gorm:"column:sort_order;not null;default:0;index"`
}

// ListOrder is the ORDER BY clause for ordered collections.
const ListOrder = "sort_order ASC, created_at ASC"
