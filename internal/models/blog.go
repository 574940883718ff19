package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Blog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Summary     string         `gorm:"size:500" json:"summary"`
	Content     string         `gorm:"type:text;not null" json:"content,omitempty"`
	ImageURL    string         `gorm:"size:512" json:"imageUrl"`
	AuthorName  string         `gorm:"size:255;not null" json:"authorName"`
	AuthorID    string         `gorm:"size:64;not null" json:"-"`
	Category    string         `gorm:"size:100;default:'General';index" json:"category"`
	Tags        datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	IsPublished bool           `gorm:"default:false;index" json:"isPublished"`
	PublishedAt *time.Time     `json:"publishedAt"`
	// Derived from Content on save: words / 200, minimum 1.
	ReadTime      int            `gorm:"default:5" json:"readTime"`
	ReadTimeLabel string         `gorm:"size:20;default:'5 min read'" json:"readTimeLabel"`
	Views         int            `gorm:"default:0" json:"views"`
	Likes         int            `gorm:"default:0" json:"likes"`
	IsFeatured    bool           `gorm:"default:false" json:"isFeatured"`
	FeaturedOrder int            `gorm:"default:0" json:"featuredOrder"`
	Slug          string         `gorm:"size:255;uniqueIndex" json:"slug"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Blog) BeforeSave(tx *gorm.DB) error {
	if b.Slug == "" && b.Title != "" {
		b.Slug = Slugify(b.Title)
	}
	if b.Content != "" {
		b.ReadTime = EstimateReadTime(b.Content)
		b.ReadTimeLabel = ReadTimeLabel(b.ReadTime)
	}
	if b.IsPublished && b.PublishedAt == nil {
		now := time.Now()
		b.PublishedAt = &now
	}
	return nil
}

func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

const wordsPerMinute = 200

func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func ReadTimeLabel(minutes int) string {
	return strconv.Itoa(minutes) + " min read"
}
