package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidAnnouncement  = errors.New("invalid announcement type or priority")
)

func validAnnouncementType(t string) bool {
	switch t {
	case "info", "warning", "success", "urgent":
		return true
	}
	return false
}

type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// List returns active, unexpired announcements, urgent first.
func (s *AnnouncementService) List() ([]models.Announcement, error) {
	var items []models.Announcement
	err := s.db.
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("priority DESC, created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return items, nil
}

func (s *AnnouncementService) AdminList() ([]models.Announcement, error) {
	var items []models.Announcement
	if err := s.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return items, nil
}

func (s *AnnouncementService) Get(id uuid.UUID) (*models.Announcement, error) {
	var item models.Announcement
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, ErrAnnouncementNotFound
	}
	return &item, nil
}

func (s *AnnouncementService) Create(req *dto.AnnouncementRequest, createdBy string) (*models.Announcement, error) {
	if req.Title == "" || req.Description == "" {
		return nil, ErrValidation
	}
	if req.Type != "" && !validAnnouncementType(req.Type) {
		return nil, ErrInvalidAnnouncement
	}
	if req.Priority < 0 || req.Priority > 5 {
		return nil, ErrInvalidAnnouncement
	}

	item := models.Announcement{
		ID:             uuid.New(),
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Type:           req.Type,
		Priority:       req.Priority,
		TargetAudience: req.TargetAudience,
		ExpiresAt:      req.ExpiresAt,
		IsActive:       true,
		CreatedBy:      createdBy,
	}
	if item.Type == "" {
		item.Type = "info"
	}
	if item.Priority == 0 {
		item.Priority = 1
	}
	if item.TargetAudience == "" {
		item.TargetAudience = "all"
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return &item, nil
}

func (s *AnnouncementService) Update(id uuid.UUID, req *dto.AnnouncementRequest) (*models.Announcement, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Type != "" && !validAnnouncementType(req.Type) {
		return nil, ErrInvalidAnnouncement
	}
	if req.Priority < 0 || req.Priority > 5 {
		return nil, ErrInvalidAnnouncement
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	if req.Type != "" {
		item.Type = req.Type
	}
	if req.Priority != 0 {
		item.Priority = req.Priority
	}
	if req.TargetAudience != "" {
		item.TargetAudience = req.TargetAudience
	}
	if req.ExpiresAt != nil {
		item.ExpiresAt = req.ExpiresAt
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return item, nil
}

func (s *AnnouncementService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Announcement{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete announcement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (s *AnnouncementService) Toggle(id uuid.UUID) (*models.Announcement, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	item.IsActive = !item.IsActive
	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle announcement: %w", err)
	}
	return item, nil
}
