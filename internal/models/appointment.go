package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no-show"
)

func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted,
		AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// Appointment links a patient to a doctor's time slot. PatientPhone and
// PatientEmail hold field-cipher ciphertext, same as the user's PII.
type Appointment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_patient_date" json:"patientId"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_doctor_date" json:"doctorId"`
	PatientName   string    `gorm:"size:255;not null" json:"patientName"`
	PatientPhone  string    `gorm:"size:512;not null" json:"-"`
	PatientEmail  string    `gorm:"size:512" json:"-"`
	Date          time.Time `gorm:"type:date;not null;index:idx_appointments_doctor_date;index:idx_appointments_patient_date" json:"appointmentDate"`
	Time          string    `gorm:"size:5;not null" json:"appointmentTime"`
	DurationMin   int       `gorm:"default:30" json:"duration"`
	Status        string    `gorm:"size:20;default:'scheduled';index" json:"status"`
	Notes         string    `gorm:"type:text" json:"notes"`
	TreatmentType string    `gorm:"size:100" json:"treatmentType"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
