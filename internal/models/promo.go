package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoCard is an admin-managed promotional card. Target* describes what
// tapping the card opens: a blog, a doctor profile, or an external URL.
type PromoCard struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Highlight string    `gorm:"size:255" json:"highlight"`
	ImageURL  string    `gorm:"size:512" json:"imageUrl"`
	SortOrder int       `gorm:"default:0" json:"order"`
	DoctorID  *uuid.UUID `gorm:"type:uuid" json:"doctorId"`
	// blog, doctor, external, none
	TargetType string         `gorm:"size:20;default:'none'" json:"targetType"`
	TargetID   *uuid.UUID     `gorm:"type:uuid" json:"targetId"`
	TargetURL  string         `gorm:"size:512" json:"targetUrl"`
	IsActive   bool           `gorm:"default:true;index" json:"isActive"`
	CreatedBy  string         `gorm:"size:64;not null" json:"-"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *PromoCard) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HomePromo is the home-screen carousel entry. Kept as a separate table from
// PromoCard because the two are curated independently by the admin panel.
type HomePromo struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	Highlight  string         `gorm:"size:255" json:"highlight"`
	ImageURL   string         `gorm:"size:512" json:"imageUrl"`
	SortOrder  int            `gorm:"default:0" json:"order"`
	TargetType string         `gorm:"size:20;default:'none'" json:"targetType"`
	TargetID   *uuid.UUID     `gorm:"type:uuid" json:"targetId"`
	TargetURL  string         `gorm:"size:512" json:"targetUrl"`
	IsActive   bool           `gorm:"default:true;index" json:"isActive"`
	CreatedBy  string         `gorm:"size:64;not null" json:"-"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *HomePromo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
