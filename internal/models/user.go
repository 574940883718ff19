package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a clinic patient or admin account. Email, Phone and Address hold
// ciphertext produced by the deterministic field cipher; the unique index on
// Email is therefore an index over ciphertext, which is what makes
// lookup-by-email work without storing plaintext PII.
//
// A user is bound to at most one external identity provider: SupabaseID is
// sparse-unique and nil for local-password accounts. Accounts are never hard
// deleted; IsActive is the only deactivation path.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"size:255;not null" json:"fullName"`
	Email        string    `gorm:"size:512;not null;uniqueIndex" json:"-"`
	Phone        string    `gorm:"size:512" json:"-"`
	Address      string    `gorm:"size:1024" json:"-"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;default:'patient'" json:"role"`
	AuthProvider string    `gorm:"size:20;default:'password'" json:"authProvider"`
	SupabaseID   *string   `gorm:"size:64;uniqueIndex" json:"-"`
	AvatarURL    string    `gorm:"size:512" json:"avatarUrl"`

	KVKKConsent    bool       `gorm:"not null;default:false" json:"kvkkConsent"`
	KVKKAcceptedAt *time.Time `json:"kvkkAcceptedAt"`
	KVKKVersion    string     `gorm:"size:20;default:'1.0.0'" json:"kvkkVersion"`

	IsActive    bool       `gorm:"default:true" json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
