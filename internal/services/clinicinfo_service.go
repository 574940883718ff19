package services

import (
	"errors"
	"fmt"

	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrClinicInfoNotFound = errors.New("clinic info not set up")

// ClinicInfoService manages the single clinic profile record.
type ClinicInfoService struct {
	db *gorm.DB
}

func NewClinicInfoService(db *gorm.DB) *ClinicInfoService {
	return &ClinicInfoService{db: db}
}

func (s *ClinicInfoService) Get() (*models.ClinicInfo, error) {
	var info models.ClinicInfo
	err := s.db.Where("is_active = ?", true).Order("created_at ASC").First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClinicInfoNotFound
		}
		return nil, fmt.Errorf("failed to load clinic info: %w", err)
	}
	return &info, nil
}

// Upsert replaces the singleton in place, creating it on first write. The
// incoming record keeps the existing row's id so there is never a second row.
func (s *ClinicInfoService) Upsert(incoming *models.ClinicInfo) (*models.ClinicInfo, error) {
	if incoming.Name == "" || incoming.PhonePrimary == "" || incoming.Address == "" {
		return nil, ErrValidation
	}

	var existing models.ClinicInfo
	err := s.db.Order("created_at ASC").First(&existing).Error
	switch {
	case err == nil:
		incoming.ID = existing.ID
		incoming.CreatedAt = existing.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		incoming.ID = uuid.New()
	default:
		return nil, fmt.Errorf("failed to load clinic info: %w", err)
	}

	incoming.IsActive = true
	if err := s.db.Save(incoming).Error; err != nil {
		return nil, fmt.Errorf("failed to save clinic info: %w", err)
	}
	return incoming, nil
}
