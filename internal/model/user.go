package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TierFree    = "free"
	TierPremium = "premium"
)

type User struct {
	ID          string         `gorm:"primarykey" json:"id"`
	DisplayName string         `json:"display_name"`
	Tier        string         `json:"tier" gorm:"default:'free'"` // "free", "premium"
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
