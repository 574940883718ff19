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
	ErrLegalNotFound   = errors.New("legal document not found")
	ErrInvalidLegalKey = errors.New("invalid legal document key")
)

// kvkkFallback is served when no KVKK disclosure has been published yet, so
// the consent screen never renders empty.
var kvkkFallback = models.LegalDocument{
	Key:      models.LegalKeyKVKK,
	Version:  "1.0.0",
	Title:    "Kişisel Verilerin Korunması Aydınlatma Metni",
	Language: "tr",
	Body: "6698 sayılı Kişisel Verilerin Korunması Kanunu (KVKK) uyarınca, " +
		"kliniğimize ilettiğiniz ad, soyad, telefon ve e-posta bilgileriniz " +
		"yalnızca randevu ve hasta iletişimi amacıyla işlenir, üçüncü " +
		"kişilerle paylaşılmaz ve yasal saklama süresi sonunda silinir. " +
		"Verilerinize ilişkin erişim, düzeltme ve silme taleplerinizi " +
		"kliniğimize iletebilirsiniz.",
	IsActive: true,
}

type LegalService struct {
	db *gorm.DB
}

func NewLegalService(db *gorm.DB) *LegalService {
	return &LegalService{db: db}
}

// GetActive returns the active version of a document for a language. The
// KVKK key falls back to the built-in text when nothing is published.
func (s *LegalService) GetActive(key, language string) (*models.LegalDocument, error) {
	if !models.ValidLegalKey(key) {
		return nil, ErrInvalidLegalKey
	}
	if language == "" {
		language = "tr"
	}

	var doc models.LegalDocument
	err := s.db.
		Where("key = ? AND language = ? AND is_active = ?", key, language, true).
		Order("created_at DESC").
		First(&doc).Error
	if err == nil {
		return &doc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load legal document: %w", err)
	}
	if key == models.LegalKeyKVKK {
		fallback := kvkkFallback
		return &fallback, nil
	}
	return nil, ErrLegalNotFound
}

func (s *LegalService) List() ([]models.LegalDocument, error) {
	var docs []models.LegalDocument
	if err := s.db.Order("key ASC, created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list legal documents: %w", err)
	}
	return docs, nil
}

func (s *LegalService) Get(id uuid.UUID) (*models.LegalDocument, error) {
	var doc models.LegalDocument
	if err := s.db.First(&doc, "id = ?", id).Error; err != nil {
		return nil, ErrLegalNotFound
	}
	return &doc, nil
}

// Create stores a new version. An active new version deactivates every
// sibling with the same key and language inside the same transaction.
func (s *LegalService) Create(req *dto.LegalDocumentRequest, createdBy string) (*models.LegalDocument, error) {
	if req.Title == "" || req.Body == "" {
		return nil, ErrValidation
	}
	if !models.ValidLegalKey(req.Key) {
		return nil, ErrInvalidLegalKey
	}

	doc := models.LegalDocument{
		ID:        uuid.New(),
		Key:       req.Key,
		Version:   req.Version,
		Title:     req.Title,
		Body:      req.Body,
		Language:  req.Language,
		IsActive:  true,
		CreatedBy: createdBy,
	}
	if doc.Version == "" {
		doc.Version = "1.0.0"
	}
	if doc.Language == "" {
		doc.Language = "tr"
	}
	if req.IsActive != nil {
		doc.IsActive = *req.IsActive
	}
	if doc.IsActive {
		now := time.Now()
		doc.PublishedAt = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if doc.IsActive {
			if err := deactivateSiblings(tx, doc.Key, doc.Language, uuid.Nil); err != nil {
				return err
			}
		}
		return tx.Create(&doc).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create legal document: %w", err)
	}
	return &doc, nil
}

func (s *LegalService) Update(id uuid.UUID, req *dto.LegalDocumentRequest) (*models.LegalDocument, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		doc.Title = req.Title
	}
	if req.Body != "" {
		doc.Body = req.Body
	}
	if req.Version != "" {
		doc.Version = req.Version
	}

	if err := s.db.Save(doc).Error; err != nil {
		return nil, fmt.Errorf("failed to update legal document: %w", err)
	}
	return doc, nil
}

func (s *LegalService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.LegalDocument{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete legal document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLegalNotFound
	}
	return nil
}

// Activate makes one version current and retires its siblings.
func (s *LegalService) Activate(id uuid.UUID) (*models.LegalDocument, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := deactivateSiblings(tx, doc.Key, doc.Language, doc.ID); err != nil {
			return err
		}
		doc.IsActive = true
		if doc.PublishedAt == nil {
			now := time.Now()
			doc.PublishedAt = &now
		}
		return tx.Save(doc).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to activate legal document: %w", err)
	}
	return doc, nil
}

func deactivateSiblings(tx *gorm.DB, key, language string, except uuid.UUID) error {
	q := tx.Model(&models.LegalDocument{}).Where("key = ? AND language = ?", key, language)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	return q.UpdateColumn("is_active", false).Error
}
