package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bookmark marks a blog post saved by a user. The composite unique index
// keeps a user from bookmarking the same post twice.
type Bookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_blog" json:"userId"`
	BlogID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_blog" json:"blogId"`
	CreatedAt time.Time `json:"createdAt"`

	Blog Blog `gorm:"foreignKey:BlogID" json:"-"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
