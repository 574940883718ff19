package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/clinichub/clinic-backend/internal/push"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidPushToken     = errors.New("not an Expo push token")
)

type NotificationService struct {
	db   *gorm.DB
	expo *push.ExpoClient
}

func NewNotificationService(db *gorm.DB, expo *push.ExpoClient) *NotificationService {
	return &NotificationService{db: db, expo: expo}
}

// List returns active, unexpired notifications for the app's inbox screen.
func (s *NotificationService) List() ([]models.Notification, error) {
	now := time.Now()
	var items []models.Notification
	err := s.db.Preload("Blog").
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Where("scheduled_for IS NULL OR scheduled_for <= ?", now).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, nil
}

func (s *NotificationService) AdminList() ([]models.Notification, error) {
	var items []models.Notification
	if err := s.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, nil
}

func (s *NotificationService) Get(id uuid.UUID) (*models.Notification, error) {
	var item models.Notification
	if err := s.db.Preload("Blog").First(&item, "id = ?", id).Error; err != nil {
		return nil, ErrNotificationNotFound
	}
	return &item, nil
}

// Create stores the notification and, when asked, fans it out to every
// registered device. Push delivery is best-effort: a gateway failure is
// logged and the notification is still created.
func (s *NotificationService) Create(ctx context.Context, req *dto.NotificationRequest, createdBy string) (*models.Notification, error) {
	if req.Title == "" || req.Message == "" {
		return nil, ErrValidation
	}

	item := models.Notification{
		ID:             uuid.New(),
		Title:          req.Title,
		Message:        req.Message,
		Type:           req.Type,
		BlogID:         req.BlogID,
		TargetAudience: req.TargetAudience,
		ScheduledFor:   req.ScheduledFor,
		ExpiresAt:      req.ExpiresAt,
		IsActive:       true,
		CreatedBy:      createdBy,
	}
	if item.Type == "" {
		item.Type = "other"
	}
	if item.TargetAudience == "" {
		item.TargetAudience = "all"
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if req.SendPush {
		s.broadcast(ctx, &item)
	}
	return &item, nil
}

func (s *NotificationService) broadcast(ctx context.Context, item *models.Notification) {
	var tokens []string
	if err := s.db.Model(&models.PushToken{}).Pluck("token", &tokens).Error; err != nil {
		slog.Error("failed to load push tokens", "error", err)
		return
	}

	data := map[string]any{"notificationId": item.ID.String(), "type": item.Type}
	if item.BlogID != nil {
		data["blogId"] = item.BlogID.String()
	}

	accepted, err := s.expo.Send(ctx, tokens, item.Title, item.Message, data)
	if err != nil {
		slog.Error("push broadcast failed", "notification_id", item.ID, "error", err)
		return
	}
	slog.Info("push broadcast sent", "notification_id", item.ID, "devices", accepted)
}

func (s *NotificationService) Update(id uuid.UUID, req *dto.NotificationRequest) (*models.Notification, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Message != "" {
		item.Message = req.Message
	}
	if req.Type != "" {
		item.Type = req.Type
	}
	if req.BlogID != nil {
		item.BlogID = req.BlogID
	}
	if req.TargetAudience != "" {
		item.TargetAudience = req.TargetAudience
	}
	if req.ScheduledFor != nil {
		item.ScheduledFor = req.ScheduledFor
	}
	if req.ExpiresAt != nil {
		item.ExpiresAt = req.ExpiresAt
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}
	return item, nil
}

func (s *NotificationService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Notification{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) Toggle(id uuid.UUID) (*models.Notification, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	item.IsActive = !item.IsActive
	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle notification: %w", err)
	}
	return item, nil
}

// RegisterPushToken upserts a device token; re-registering refreshes the
// last-seen stamp.
func (s *NotificationService) RegisterPushToken(req *dto.RegisterPushTokenRequest) error {
	if !push.ValidToken(req.Token) {
		return ErrInvalidPushToken
	}

	var existing models.PushToken
	err := s.db.Where("token = ?", req.Token).First(&existing).Error
	if err == nil {
		existing.LastSeenAt = time.Now()
		if req.Platform != "" {
			existing.Platform = req.Platform
		}
		return s.db.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up push token: %w", err)
	}

	token := models.PushToken{
		ID:         uuid.New(),
		Token:      req.Token,
		Platform:   req.Platform,
		LastSeenAt: time.Now(),
	}
	if err := s.db.Create(&token).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to register push token: %w", err)
	}
	return nil
}
