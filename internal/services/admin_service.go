package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/clinichub/clinic-backend/internal/crypto"
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole   = errors.New("role must be patient or admin")
	ErrInvalidExport = errors.New("unknown export type")
)

type AdminService struct {
	db     *gorm.DB
	cipher *crypto.FieldCipher
}

func NewAdminService(db *gorm.DB, cipher *crypto.FieldCipher) *AdminService {
	return &AdminService{db: db, cipher: cipher}
}

// Stats runs the dashboard counting queries.
func (s *AdminService) Stats() (*dto.AdminStats, error) {
	stats := &dto.AdminStats{}
	today := time.Now().Truncate(24 * time.Hour)

	counts := []struct {
		dest *int64
		tx   *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.ActiveUsers, s.db.Model(&models.User{}).Where("is_active = ?", true)},
		{&stats.TotalDoctors, s.db.Model(&models.Doctor{})},
		{&stats.ActiveDoctors, s.db.Model(&models.Doctor{}).Where("is_active = ?", true)},
		{&stats.TotalBlogs, s.db.Model(&models.Blog{})},
		{&stats.PublishedBlogs, s.db.Model(&models.Blog{}).Where("is_published = ?", true)},
		{&stats.TotalAppointments, s.db.Model(&models.Appointment{})},
		{&stats.TodaysAppointments, s.db.Model(&models.Appointment{}).Where("date = ?", today)},
		{&stats.PendingAppointments, s.db.Model(&models.Appointment{}).Where("status = ?", models.AppointmentScheduled)},
		{&stats.TotalAnnouncements, s.db.Model(&models.Announcement{}).Where("is_active = ?", true)},
		{&stats.RegisteredDevices, s.db.Model(&models.PushToken{})},
	}
	for _, c := range counts {
		if err := c.tx.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}
	}
	return stats, nil
}

// ListUsers returns user profiles with PII decrypted for the panel. Search
// matches the plaintext full name; email search is not possible against
// ciphertext except as an exact normalized match.
func (s *AdminService) ListUsers(q *dto.UserListQuery) ([]dto.UserProfile, dto.Pagination, error) {
	page, limit, offset := dto.PageQuery(q.Page, q.Limit, 20)

	tx := s.db.Model(&models.User{})
	if q.Role != "" {
		tx = tx.Where("role = ?", q.Role)
	}
	if q.Search != "" {
		exact := s.cipher.Encrypt(NormalizeEmail(q.Search))
		tx = tx.Where("full_name LIKE ? OR email = ?", "%"+q.Search+"%", exact)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]dto.UserProfile, len(users))
	for i := range users {
		profiles[i] = s.toProfile(&users[i])
	}
	return profiles, dto.NewPagination(page, limit, len(profiles), total), nil
}

func (s *AdminService) GetUser(id uuid.UUID) (*dto.UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	profile := s.toProfile(&user)
	return &profile, nil
}

func (s *AdminService) ToggleUserStatus(id uuid.UUID) (*dto.UserProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	user.IsActive = !user.IsActive
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle user status: %w", err)
	}
	profile := s.toProfile(&user)
	return &profile, nil
}

func (s *AdminService) SetUserRole(id uuid.UUID, role string) (*dto.UserProfile, error) {
	if role != "patient" && role != "admin" {
		return nil, ErrInvalidRole
	}
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	user.Role = role
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to set user role: %w", err)
	}
	profile := s.toProfile(&user)
	return &profile, nil
}

// Logs pages through the persisted system logs, newest first.
func (s *AdminService) Logs(q *dto.LogQuery) ([]models.SystemLog, dto.Pagination, error) {
	page, limit, offset := dto.PageQuery(q.Page, q.Limit, 50)

	tx := s.db.Model(&models.SystemLog{})
	if q.Level != "" {
		tx = tx.Where("level = ?", q.Level)
	}
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count logs: %w", err)
	}

	var logs []models.SystemLog
	if err := tx.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list logs: %w", err)
	}
	return logs, dto.NewPagination(page, limit, len(logs), total), nil
}

// CleanupLogs deletes system logs older than the given number of days and
// returns how many rows went away.
func (s *AdminService) CleanupLogs(olderThanDays int) (int64, error) {
	if olderThanDays < 1 {
		olderThanDays = 30
	}
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	result := s.db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clean up logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Export returns full table contents for the panel's download buttons.
// Users and appointments are exported decrypted.
func (s *AdminService) Export(kind string) (any, error) {
	switch kind {
	case "users":
		var users []models.User
		if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
			return nil, fmt.Errorf("failed to export users: %w", err)
		}
		profiles := make([]dto.UserProfile, len(users))
		for i := range users {
			profiles[i] = s.toProfile(&users[i])
		}
		return profiles, nil
	case "appointments":
		var appts []models.Appointment
		if err := s.db.Preload("Doctor").Order("date ASC").Find(&appts).Error; err != nil {
			return nil, fmt.Errorf("failed to export appointments: %w", err)
		}
		views := make([]dto.AppointmentView, len(appts))
		for i := range appts {
			a := &appts[i]
			views[i] = dto.AppointmentView{
				ID:            a.ID,
				DoctorID:      a.DoctorID,
				DoctorName:    a.Doctor.FullName(),
				PatientID:     a.PatientID,
				PatientName:   a.PatientName,
				PatientPhone:  s.cipher.Decrypt(a.PatientPhone),
				PatientEmail:  s.cipher.Decrypt(a.PatientEmail),
				Date:          a.Date.Format(dateLayout),
				Time:          a.Time,
				DurationMin:   a.DurationMin,
				Status:        a.Status,
				Notes:         a.Notes,
				TreatmentType: a.TreatmentType,
				CreatedAt:     a.CreatedAt,
			}
		}
		return views, nil
	case "doctors":
		var doctors []models.Doctor
		if err := s.db.Order("created_at ASC").Find(&doctors).Error; err != nil {
			return nil, fmt.Errorf("failed to export doctors: %w", err)
		}
		return doctors, nil
	case "blogs":
		var blogs []models.Blog
		if err := s.db.Order("created_at ASC").Find(&blogs).Error; err != nil {
			return nil, fmt.Errorf("failed to export blogs: %w", err)
		}
		return blogs, nil
	}
	return nil, ErrInvalidExport
}

// AuditTrail pages the admin action log.
func (s *AdminService) AuditTrail(page, limit int) ([]models.AuditLog, dto.Pagination, error) {
	page, limit, offset := dto.PageQuery(page, limit, 50)

	var total int64
	if err := s.db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var entries []models.AuditLog
	err := s.db.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return entries, dto.NewPagination(page, limit, len(entries), total), nil
}

func (s *AdminService) toProfile(user *models.User) dto.UserProfile {
	return dto.UserProfile{
		ID:           user.ID,
		FullName:     user.FullName,
		Email:        s.cipher.Decrypt(user.Email),
		Phone:        s.cipher.Decrypt(user.Phone),
		Address:      s.cipher.Decrypt(user.Address),
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
		AvatarURL:    user.AvatarURL,
		KVKKConsent:  user.KVKKConsent,
		IsActive:     user.IsActive,
		LastLoginAt:  user.LastLoginAt,
		CreatedAt:    user.CreatedAt,
	}
}
