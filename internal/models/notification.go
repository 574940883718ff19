package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app notification entry. Creating one with push
// enabled also fans out to every registered Expo device token.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title   string    `gorm:"size:255;not null" json:"title"`
	Message string    `gorm:"type:text;not null" json:"message"`
	// announcement, blog, other
	Type   string     `gorm:"size:20;default:'other';index" json:"type"`
	BlogID *uuid.UUID `gorm:"type:uuid" json:"blogId"`
	UserID *uuid.UUID `gorm:"type:uuid" json:"userId"`
	// all, patients, staff
	TargetAudience string         `gorm:"size:20;default:'all'" json:"targetAudience"`
	ScheduledFor   *time.Time     `json:"scheduledFor"`
	ExpiresAt      *time.Time     `json:"expiresAt"`
	IsActive       bool           `gorm:"default:true;index" json:"isActive"`
	CreatedBy      string         `gorm:"size:64;not null" json:"-"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Blog *Blog `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// PushToken is one registered Expo push endpoint for a device.
type PushToken struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Token      string    `gorm:"size:255;not null;uniqueIndex" json:"token"`
	Platform   string    `gorm:"size:20" json:"platform"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (t *PushToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
