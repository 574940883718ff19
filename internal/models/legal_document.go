package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LegalKeyKVKK    = "kvkk"
	LegalKeyPrivacy = "privacy"
	LegalKeyTerms   = "terms"
)

func ValidLegalKey(k string) bool {
	return k == LegalKeyKVKK || k == LegalKeyPrivacy || k == LegalKeyTerms
}

// LegalDocument is a versioned legal text (KVKK disclosure, privacy policy,
// terms). At most one version per key+language is active at a time;
// activating a version deactivates its siblings.
type LegalDocument struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Key         string     `gorm:"size:20;not null;index:idx_legal_key_lang" json:"key"`
	Version     string     `gorm:"size:20;not null;default:'1.0.0'" json:"version"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Language    string     `gorm:"size:5;default:'tr';index:idx_legal_key_lang" json:"language"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedBy   string     `gorm:"size:64;not null" json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (d *LegalDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
