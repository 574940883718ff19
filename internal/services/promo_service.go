package services

import (
	"errors"
	"fmt"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPromoNotFound   = errors.New("promo not found")
	ErrInvalidTarget   = errors.New("invalid promo target type")
	ErrEmptyReordering = errors.New("reorder request carries no ids")
)

func validTargetType(t string) bool {
	switch t {
	case "", "none", "blog", "doctor", "external":
		return true
	}
	return false
}

// PromoService manages the two admin-curated promo surfaces: the promo card
// stack and the home-screen carousel. Same shape, separate tables, curated
// independently.
type PromoService struct {
	db *gorm.DB
}

func NewPromoService(db *gorm.DB) *PromoService {
	return &PromoService{db: db}
}

func (s *PromoService) ListCards() ([]models.PromoCard, error) {
	var cards []models.PromoCard
	err := s.db.Where("is_active = ?", true).Order("sort_order ASC, created_at DESC").Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list promo cards: %w", err)
	}
	return cards, nil
}

func (s *PromoService) AdminListCards() ([]models.PromoCard, error) {
	var cards []models.PromoCard
	if err := s.db.Order("sort_order ASC").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list promo cards: %w", err)
	}
	return cards, nil
}

func (s *PromoService) CreateCard(req *dto.PromoRequest, createdBy string) (*models.PromoCard, error) {
	if req.Title == "" {
		return nil, ErrValidation
	}
	if !validTargetType(req.TargetType) {
		return nil, ErrInvalidTarget
	}

	card := models.PromoCard{
		ID:         uuid.New(),
		Title:      req.Title,
		Highlight:  req.Highlight,
		ImageURL:   req.ImageURL,
		SortOrder:  req.SortOrder,
		DoctorID:   req.DoctorID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		TargetURL:  req.TargetURL,
		IsActive:   true,
		CreatedBy:  createdBy,
	}
	if card.TargetType == "" {
		card.TargetType = "none"
	}

	if err := s.db.Create(&card).Error; err != nil {
		return nil, fmt.Errorf("failed to create promo card: %w", err)
	}
	return &card, nil
}

func (s *PromoService) UpdateCard(id uuid.UUID, req *dto.PromoRequest) (*models.PromoCard, error) {
	var card models.PromoCard
	if err := s.db.First(&card, "id = ?", id).Error; err != nil {
		return nil, ErrPromoNotFound
	}
	if !validTargetType(req.TargetType) {
		return nil, ErrInvalidTarget
	}

	applyPromoFields(&card.Title, &card.Highlight, &card.ImageURL, &card.TargetType, &card.TargetURL, req)
	card.SortOrder = req.SortOrder
	if req.DoctorID != nil {
		card.DoctorID = req.DoctorID
	}
	if req.TargetID != nil {
		card.TargetID = req.TargetID
	}

	if err := s.db.Save(&card).Error; err != nil {
		return nil, fmt.Errorf("failed to update promo card: %w", err)
	}
	return &card, nil
}

func (s *PromoService) DeleteCard(id uuid.UUID) error {
	result := s.db.Delete(&models.PromoCard{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete promo card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPromoNotFound
	}
	return nil
}

// ReorderCards rewrites sort_order to match the given id order.
func (s *PromoService) ReorderCards(req *dto.ReorderRequest) error {
	if len(req.IDs) == 0 {
		return ErrEmptyReordering
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range req.IDs {
			err := tx.Model(&models.PromoCard{}).Where("id = ?", id).UpdateColumn("sort_order", i).Error
			if err != nil {
				return fmt.Errorf("failed to reorder promo cards: %w", err)
			}
		}
		return nil
	})
}

func (s *PromoService) ListHome() ([]models.HomePromo, error) {
	var promos []models.HomePromo
	err := s.db.Where("is_active = ?", true).Order("sort_order ASC, created_at DESC").Find(&promos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list home promos: %w", err)
	}
	return promos, nil
}

func (s *PromoService) AdminListHome() ([]models.HomePromo, error) {
	var promos []models.HomePromo
	if err := s.db.Order("sort_order ASC").Find(&promos).Error; err != nil {
		return nil, fmt.Errorf("failed to list home promos: %w", err)
	}
	return promos, nil
}

func (s *PromoService) CreateHome(req *dto.PromoRequest, createdBy string) (*models.HomePromo, error) {
	if req.Title == "" {
		return nil, ErrValidation
	}
	if !validTargetType(req.TargetType) {
		return nil, ErrInvalidTarget
	}

	promo := models.HomePromo{
		ID:         uuid.New(),
		Title:      req.Title,
		Highlight:  req.Highlight,
		ImageURL:   req.ImageURL,
		SortOrder:  req.SortOrder,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		TargetURL:  req.TargetURL,
		IsActive:   true,
		CreatedBy:  createdBy,
	}
	if promo.TargetType == "" {
		promo.TargetType = "none"
	}

	if err := s.db.Create(&promo).Error; err != nil {
		return nil, fmt.Errorf("failed to create home promo: %w", err)
	}
	return &promo, nil
}

func (s *PromoService) UpdateHome(id uuid.UUID, req *dto.PromoRequest) (*models.HomePromo, error) {
	var promo models.HomePromo
	if err := s.db.First(&promo, "id = ?", id).Error; err != nil {
		return nil, ErrPromoNotFound
	}
	if !validTargetType(req.TargetType) {
		return nil, ErrInvalidTarget
	}

	applyPromoFields(&promo.Title, &promo.Highlight, &promo.ImageURL, &promo.TargetType, &promo.TargetURL, req)
	promo.SortOrder = req.SortOrder
	if req.TargetID != nil {
		promo.TargetID = req.TargetID
	}

	if err := s.db.Save(&promo).Error; err != nil {
		return nil, fmt.Errorf("failed to update home promo: %w", err)
	}
	return &promo, nil
}

func (s *PromoService) DeleteHome(id uuid.UUID) error {
	result := s.db.Delete(&models.HomePromo{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete home promo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPromoNotFound
	}
	return nil
}

func (s *PromoService) ReorderHome(req *dto.ReorderRequest) error {
	if len(req.IDs) == 0 {
		return ErrEmptyReordering
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range req.IDs {
			err := tx.Model(&models.HomePromo{}).Where("id = ?", id).UpdateColumn("sort_order", i).Error
			if err != nil {
				return fmt.Errorf("failed to reorder home promos: %w", err)
			}
		}
		return nil
	})
}

func applyPromoFields(title, highlight, imageURL, targetType, targetURL *string, req *dto.PromoRequest) {
	if req.Title != "" {
		*title = req.Title
	}
	if req.Highlight != "" {
		*highlight = req.Highlight
	}
	if req.ImageURL != "" {
		*imageURL = req.ImageURL
	}
	if req.TargetType != "" {
		*targetType = req.TargetType
	}
	if req.TargetURL != "" {
		*targetURL = req.TargetURL
	}
}
