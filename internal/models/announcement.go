package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Announcement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl"`
	// info, warning, success, urgent
	Type     string `gorm:"size:20;default:'info'" json:"type"`
	Priority int    `gorm:"default:1" json:"priority"`
	// all, patients, staff
	TargetAudience string         `gorm:"size:20;default:'all'" json:"targetAudience"`
	ExpiresAt      *time.Time     `json:"expiresAt"`
	IsActive       bool           `gorm:"default:true;index" json:"isActive"`
	CreatedBy      string         `gorm:"size:64;not null" json:"-"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
