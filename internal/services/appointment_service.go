package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clinichub/clinic-backend/internal/crypto"
	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotTaken           = errors.New("this time slot is already booked")
	ErrDoctorUnavailable   = errors.New("doctor is not available for booking")
	ErrInvalidSlot         = errors.New("invalid appointment date or time")
	ErrNotAppointmentOwner = errors.New("appointment belongs to another patient")
	ErrCancelCompleted     = errors.New("completed appointments cannot be cancelled")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)

// clinicSlots is the half-hour booking grid the clinic operates on. A
// doctor's weekly hours narrow it further per weekday.
var clinicSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30",
}

const dateLayout = "2006-01-02"

type AppointmentService struct {
	db     *gorm.DB
	cipher *crypto.FieldCipher
}

func NewAppointmentService(db *gorm.DB, cipher *crypto.FieldCipher) *AppointmentService {
	return &AppointmentService{db: db, cipher: cipher}
}

// Book creates an appointment after checking the doctor is active and the
// slot is free. Contact fields are encrypted before the row is written.
func (s *AppointmentService) Book(patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentView, error) {
	if req.DoctorID == uuid.Nil || req.Date == "" || req.Time == "" || req.PatientName == "" || req.PatientPhone == "" {
		return nil, ErrValidation
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil || !validSlotTime(req.Time) {
		return nil, ErrInvalidSlot
	}

	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ? AND is_active = ?", req.DoctorID, true).Error; err != nil {
		return nil, ErrDoctorUnavailable
	}

	var conflicts int64
	err = s.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ?", req.DoctorID, date, req.Time).
		Where("status NOT IN ?", []string{models.AppointmentCancelled, models.AppointmentNoShow}).
		Count(&conflicts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if conflicts > 0 {
		return nil, ErrSlotTaken
	}

	appt := models.Appointment{
		ID:            uuid.New(),
		PatientID:     patientID,
		DoctorID:      req.DoctorID,
		PatientName:   req.PatientName,
		PatientPhone:  s.cipher.Encrypt(req.PatientPhone),
		PatientEmail:  s.cipher.Encrypt(NormalizeEmail(req.PatientEmail)),
		Date:          date,
		Time:          req.Time,
		DurationMin:   30,
		Status:        models.AppointmentScheduled,
		Notes:         req.Notes,
		TreatmentType: req.TreatmentType,
	}

	if err := s.db.Create(&appt).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	appt.Doctor = doctor
	view := s.toView(&appt)
	return &view, nil
}

// MyAppointments lists the caller's appointments newest first, with contact
// fields decrypted.
func (s *AppointmentService) MyAppointments(patientID uuid.UUID) ([]dto.AppointmentView, error) {
	var appts []models.Appointment
	err := s.db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("date DESC, time DESC").
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return s.toViews(appts), nil
}

// Get returns one appointment to its owner or to an admin.
func (s *AppointmentService) Get(id, callerID uuid.UUID, isAdmin bool) (*dto.AppointmentView, error) {
	var appt models.Appointment
	if err := s.db.Preload("Doctor").First(&appt, "id = ?", id).Error; err != nil {
		return nil, ErrAppointmentNotFound
	}
	if !isAdmin && appt.PatientID != callerID {
		return nil, ErrNotAppointmentOwner
	}
	view := s.toView(&appt)
	return &view, nil
}

// Cancel is the owner's path. Admin state changes go through SetStatus.
func (s *AppointmentService) Cancel(id, callerID uuid.UUID) (*dto.AppointmentView, error) {
	var appt models.Appointment
	if err := s.db.Preload("Doctor").First(&appt, "id = ?", id).Error; err != nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.PatientID != callerID {
		return nil, ErrNotAppointmentOwner
	}
	if appt.Status == models.AppointmentCompleted {
		return nil, ErrCancelCompleted
	}

	appt.Status = models.AppointmentCancelled
	if err := s.db.Save(&appt).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	view := s.toView(&appt)
	return &view, nil
}

func (s *AppointmentService) SetStatus(id uuid.UUID, req *dto.AppointmentStatusRequest) (*dto.AppointmentView, error) {
	if !models.ValidAppointmentStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	var appt models.Appointment
	if err := s.db.Preload("Doctor").First(&appt, "id = ?", id).Error; err != nil {
		return nil, ErrAppointmentNotFound
	}

	appt.Status = req.Status
	if req.Notes != "" {
		appt.Notes = req.Notes
	}
	if err := s.db.Save(&appt).Error; err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	view := s.toView(&appt)
	return &view, nil
}

// AvailableSlots intersects the clinic grid with the doctor's weekday hours
// and removes already-booked times.
func (s *AppointmentService) AvailableSlots(doctorID uuid.UUID, dateStr string) ([]string, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, ErrInvalidSlot
	}

	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ? AND is_active = ?", doctorID, true).Error; err != nil {
		return nil, ErrDoctorUnavailable
	}

	window, works := doctorWindow(&doctor, date)
	if !works {
		return []string{}, nil
	}

	var booked []string
	err = s.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Where("status NOT IN ?", []string{models.AppointmentCancelled, models.AppointmentNoShow}).
		Pluck("time", &booked).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}

	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	slots := make([]string, 0, len(clinicSlots))
	for _, slot := range clinicSlots {
		if slot >= window.Start && slot < window.End && !taken[slot] {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// AdminList applies the panel's doctor/status/date filters.
func (s *AppointmentService) AdminList(q *dto.AppointmentListQuery) ([]dto.AppointmentView, dto.Pagination, error) {
	page, limit, offset := dto.PageQuery(q.Page, q.Limit, 20)

	tx := s.db.Model(&models.Appointment{})
	if q.DoctorID != "" {
		tx = tx.Where("doctor_id = ?", q.DoctorID)
	}
	if q.Status != "" {
		if !models.ValidAppointmentStatus(q.Status) {
			return nil, dto.Pagination{}, ErrInvalidStatus
		}
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Date != "" {
		date, err := time.Parse(dateLayout, q.Date)
		if err != nil {
			return nil, dto.Pagination{}, ErrInvalidSlot
		}
		tx = tx.Where("date = ?", date)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to count appointments: %w", err)
	}

	var appts []models.Appointment
	err := tx.Preload("Doctor").Order("date DESC, time DESC").Limit(limit).Offset(offset).Find(&appts).Error
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("failed to list appointments: %w", err)
	}
	return s.toViews(appts), dto.NewPagination(page, limit, len(appts), total), nil
}

func (s *AppointmentService) toViews(appts []models.Appointment) []dto.AppointmentView {
	views := make([]dto.AppointmentView, len(appts))
	for i := range appts {
		views[i] = s.toView(&appts[i])
	}
	return views
}

func (s *AppointmentService) toView(appt *models.Appointment) dto.AppointmentView {
	return dto.AppointmentView{
		ID:            appt.ID,
		DoctorID:      appt.DoctorID,
		DoctorName:    appt.Doctor.FullName(),
		PatientID:     appt.PatientID,
		PatientName:   appt.PatientName,
		PatientPhone:  s.cipher.Decrypt(appt.PatientPhone),
		PatientEmail:  s.cipher.Decrypt(appt.PatientEmail),
		Date:          appt.Date.Format(dateLayout),
		Time:          appt.Time,
		DurationMin:   appt.DurationMin,
		Status:        appt.Status,
		Notes:         appt.Notes,
		TreatmentType: appt.TreatmentType,
		CreatedAt:     appt.CreatedAt,
	}
}

func validSlotTime(t string) bool {
	for _, slot := range clinicSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// doctorWindow resolves the doctor's hours for the weekday of date. A doctor
// without a stored schedule gets the full clinic grid.
func doctorWindow(doctor *models.Doctor, date time.Time) (dto.WorkingWindow, bool) {
	full := dto.WorkingWindow{Start: clinicSlots[0], End: "18:00"}
	if len(doctor.AvailableHours) == 0 {
		return full, true
	}

	var hours map[string]dto.WorkingWindow
	if err := json.Unmarshal(doctor.AvailableHours, &hours); err != nil {
		return full, true
	}

	day := strings.ToLower(date.Weekday().String())
	window, ok := hours[day]
	if !ok || window.Start == "" || window.End == "" {
		return dto.WorkingWindow{}, false
	}
	return window, true
}
