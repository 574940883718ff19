package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrBlogNotFound  = errors.New("blog not found")
	ErrDuplicateSlug = errors.New("a blog with this title already exists")
)

type BlogService struct {
	db *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

// List returns published posts. Content is omitted from the list view so the
// mobile feed stays light; the detail endpoint carries the full body.
func (s *BlogService) List(q *dto.BlogListQuery) ([]models.Blog, dto.Pagination, error) {
	page, limit, offset := dto.PageQuery(q.Page, q.Limit, 10)

	tx := s.db.Model(&models.Blog{}).Where("is_published = ?", true)
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Author != "" {
		tx = tx.Where("author_name = ?", q.Author)
	}
	if q.Featured {
		tx = tx.Where("is_featured = ?", true).Order("featured_order ASC")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count blogs: %w", err)
	}

	var blogs []models.Blog
	err := tx.Omit("content").Order("published_at DESC").Limit(limit).Offset(offset).Find(&blogs).Error
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, dto.NewPagination(page, limit, len(blogs), total), nil
}

func (s *BlogService) AdminList(page, limit int) ([]models.Blog, dto.Pagination, error) {
	page, limit, offset := dto.PageQuery(page, limit, 10)

	var total int64
	if err := s.db.Model(&models.Blog{}).Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count blogs: %w", err)
	}

	var blogs []models.Blog
	err := s.db.Omit("content").Order("created_at DESC").Limit(limit).Offset(offset).Find(&blogs).Error
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list blogs: %w", err)
	}
	return blogs, dto.NewPagination(page, limit, len(blogs), total), nil
}

// Get returns one post. Published posts get a view-count bump; unpublished
// posts are only visible to admins.
func (s *BlogService) Get(id uuid.UUID, isAdmin bool) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", id).Error; err != nil {
		return nil, ErrBlogNotFound
	}
	if !blog.IsPublished && !isAdmin {
		return nil, ErrBlogNotFound
	}
	if blog.IsPublished {
		// Fire-and-count; UpdateColumn skips hooks so ReadTime is untouched.
		if err := s.db.Model(&blog).UpdateColumn("views", gorm.Expr("views + 1")).Error; err == nil {
			blog.Views++
		}
	}
	return &blog, nil
}

func (s *BlogService) Create(req *dto.BlogRequest, authorID, authorName string) (*models.Blog, error) {
	if req.Title == "" || req.Content == "" {
		return nil, ErrValidation
	}

	blog := models.Blog{
		ID:            uuid.New(),
		Title:         req.Title,
		Summary:       req.Summary,
		Content:       req.Content,
		ImageURL:      req.ImageURL,
		AuthorName:    authorName,
		AuthorID:      authorID,
		Category:      req.Category,
		FeaturedOrder: req.FeaturedOrder,
	}
	if blog.Category == "" {
		blog.Category = "General"
	}
	if req.IsPublished != nil {
		blog.IsPublished = *req.IsPublished
	}
	if req.IsFeatured != nil {
		blog.IsFeatured = *req.IsFeatured
	}
	if err := applyBlogTags(&blog, req.Tags); err != nil {
		return nil, err
	}

	if err := s.db.Create(&blog).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	return &blog, nil
}

func (s *BlogService) Update(id uuid.UUID, req *dto.BlogRequest) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", id).Error; err != nil {
		return nil, ErrBlogNotFound
	}

	if req.Title != "" && req.Title != blog.Title {
		blog.Title = req.Title
		blog.Slug = models.Slugify(req.Title)
	}
	if req.Summary != "" {
		blog.Summary = req.Summary
	}
	if req.Content != "" {
		blog.Content = req.Content
	}
	if req.ImageURL != "" {
		blog.ImageURL = req.ImageURL
	}
	if req.Category != "" {
		blog.Category = req.Category
	}
	if req.IsPublished != nil {
		blog.IsPublished = *req.IsPublished
	}
	if req.IsFeatured != nil {
		blog.IsFeatured = *req.IsFeatured
		blog.FeaturedOrder = req.FeaturedOrder
	}
	if err := applyBlogTags(&blog, req.Tags); err != nil {
		return nil, err
	}

	if err := s.db.Save(&blog).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	return &blog, nil
}

func (s *BlogService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Blog{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete blog: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

func (s *BlogService) TogglePublish(id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ?", id).Error; err != nil {
		return nil, ErrBlogNotFound
	}
	blog.IsPublished = !blog.IsPublished
	if blog.IsPublished && blog.PublishedAt == nil {
		now := time.Now()
		blog.PublishedAt = &now
	}
	if err := s.db.Save(&blog).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle publish: %w", err)
	}
	return &blog, nil
}

func (s *BlogService) Like(id uuid.UUID) (int, error) {
	var blog models.Blog
	if err := s.db.First(&blog, "id = ? AND is_published = ?", id, true).Error; err != nil {
		return 0, ErrBlogNotFound
	}
	if err := s.db.Model(&blog).UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
		return 0, fmt.Errorf("failed to like blog: %w", err)
	}
	return blog.Likes + 1, nil
}

func applyBlogTags(blog *models.Blog, tags []string) error {
	if tags == nil {
		return nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	blog.Tags = datatypes.JSON(raw)
	return nil
}
