package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type DoctorService struct {
	db *gorm.DB
}

func NewDoctorService(db *gorm.DB) *DoctorService {
	return &DoctorService{db: db}
}

// List returns active doctors for the public directory, newest first.
func (s *DoctorService) List(q *dto.DoctorListQuery) ([]models.Doctor, dto.Pagination, error) {
	page, limit, offset := dto.PageQuery(q.Page, q.Limit, 20)

	tx := s.db.Model(&models.Doctor{}).Where("is_active = ?", true)
	if q.Specialty != "" {
		tx = tx.Where("specialty = ?", q.Specialty)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count doctors: %w", err)
	}

	var doctors []models.Doctor
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&doctors).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, dto.NewPagination(page, limit, len(doctors), total), nil
}

// AdminList includes inactive doctors.
func (s *DoctorService) AdminList(page, limit int) ([]models.Doctor, dto.Pagination, error) {
	page, limit, offset := dto.PageQuery(page, limit, 20)

	var total int64
	if err := s.db.Model(&models.Doctor{}).Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count doctors: %w", err)
	}

	var doctors []models.Doctor
	err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&doctors).Error
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, dto.NewPagination(page, limit, len(doctors), total), nil
}

func (s *DoctorService) Get(id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", id).Error; err != nil {
		return nil, ErrDoctorNotFound
	}
	return &doctor, nil
}

func (s *DoctorService) Create(req *dto.DoctorRequest) (*models.Doctor, error) {
	if req.Name == "" || req.Specialty == "" || req.Phone == "" {
		return nil, ErrValidation
	}

	doctor := models.Doctor{
		ID:         uuid.New(),
		Name:       req.Name,
		Surname:    req.Surname,
		Title:      req.Title,
		Specialty:  req.Specialty,
		University: req.University,
		Experience: req.Experience,
		Phone:      req.Phone,
		Email:      req.Email,
		ImageURL:   req.ImageURL,
		Bio:        req.Bio,
		Rating:     req.Rating,
		Patients:   req.Patients,
		IsActive:   true,
	}
	if err := applyDoctorJSON(&doctor, req); err != nil {
		return nil, err
	}

	if err := s.db.Create(&doctor).Error; err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return &doctor, nil
}

func (s *DoctorService) Update(id uuid.UUID, req *dto.DoctorRequest) (*models.Doctor, error) {
	doctor, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		doctor.Name = req.Name
	}
	if req.Surname != "" {
		doctor.Surname = req.Surname
	}
	if req.Title != "" {
		doctor.Title = req.Title
	}
	if req.Specialty != "" {
		doctor.Specialty = req.Specialty
	}
	if req.University != "" {
		doctor.University = req.University
	}
	if req.Experience != "" {
		doctor.Experience = req.Experience
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.Email != "" {
		doctor.Email = req.Email
	}
	if req.ImageURL != "" {
		doctor.ImageURL = req.ImageURL
	}
	if req.Bio != "" {
		doctor.Bio = req.Bio
	}
	if req.Rating > 0 {
		doctor.Rating = req.Rating
	}
	if req.Patients > 0 {
		doctor.Patients = req.Patients
	}
	if err := applyDoctorJSON(doctor, req); err != nil {
		return nil, err
	}

	if err := s.db.Save(doctor).Error; err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	return doctor, nil
}

// Delete soft-deletes; past appointments keep their doctor reference.
func (s *DoctorService) Delete(id uuid.UUID) error {
	result := s.db.Delete(&models.Doctor{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete doctor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (s *DoctorService) ToggleStatus(id uuid.UUID) (*models.Doctor, error) {
	doctor, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	doctor.IsActive = !doctor.IsActive
	if err := s.db.Save(doctor).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle doctor status: %w", err)
	}
	return doctor, nil
}

func applyDoctorJSON(doctor *models.Doctor, req *dto.DoctorRequest) error {
	if req.Languages != nil {
		raw, err := json.Marshal(req.Languages)
		if err != nil {
			return fmt.Errorf("failed to encode languages: %w", err)
		}
		doctor.Languages = datatypes.JSON(raw)
	}
	if req.AvailableHours != nil {
		raw, err := json.Marshal(req.AvailableHours)
		if err != nil {
			return fmt.Errorf("failed to encode available hours: %w", err)
		}
		doctor.AvailableHours = datatypes.JSON(raw)
	}
	return nil
}
