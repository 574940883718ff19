package services

import (
	"errors"
	"fmt"

	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBookmarkNotFound = errors.New("bookmark not found")

type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

// List returns the user's bookmarked blogs, bookmark order, published only.
// A post unpublished after being bookmarked silently drops out of the list.
func (s *BookmarkService) List(userID uuid.UUID) ([]models.Blog, error) {
	var bookmarks []models.Bookmark
	err := s.db.Preload("Blog", "is_published = ?", true).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	blogs := make([]models.Blog, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.Blog.ID != uuid.Nil && b.Blog.IsPublished {
			b.Blog.Content = ""
			blogs = append(blogs, b.Blog)
		}
	}
	return blogs, nil
}

// Add is idempotent: re-bookmarking an already-saved post succeeds.
func (s *BookmarkService) Add(userID, blogID uuid.UUID) error {
	var blog models.Blog
	if err := s.db.Select("id").First(&blog, "id = ? AND is_published = ?", blogID, true).Error; err != nil {
		return ErrBlogNotFound
	}

	bookmark := models.Bookmark{ID: uuid.New(), UserID: userID, BlogID: blogID}
	if err := s.db.Create(&bookmark).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to create bookmark: %w", err)
	}
	return nil
}

func (s *BookmarkService) Remove(userID, blogID uuid.UUID) error {
	result := s.db.Delete(&models.Bookmark{}, "user_id = ? AND blog_id = ?", userID, blogID)
	if result.Error != nil {
		return fmt.Errorf("failed to remove bookmark: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}
