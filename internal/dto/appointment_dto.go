package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	DoctorID      uuid.UUID `json:"doctorId"`
	Date          string    `json:"appointmentDate"`
	Time          string    `json:"appointmentTime"`
	PatientName   string    `json:"patientName"`
	PatientPhone  string    `json:"patientPhone"`
	PatientEmail  string    `json:"patientEmail"`
	Notes         string    `json:"notes"`
	TreatmentType string    `json:"treatmentType"`
}

type AppointmentStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// AppointmentView is an appointment with its encrypted contact fields
// decrypted for the caller.
type AppointmentView struct {
	ID            uuid.UUID `json:"id"`
	DoctorID      uuid.UUID `json:"doctorId"`
	DoctorName    string    `json:"doctorName"`
	PatientID     uuid.UUID `json:"patientId"`
	PatientName   string    `json:"patientName"`
	PatientPhone  string    `json:"patientPhone"`
	PatientEmail  string    `json:"patientEmail"`
	Date          string    `json:"appointmentDate"`
	Time          string    `json:"appointmentTime"`
	DurationMin   int       `json:"duration"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	TreatmentType string    `json:"treatmentType"`
	CreatedAt     time.Time `json:"createdAt"`
}

type AppointmentListQuery struct {
	DoctorID string `query:"doctorId"`
	Status   string `query:"status"`
	Date     string `query:"date"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type AvailableSlotsResponse struct {
	Success bool     `json:"success"`
	Date    string   `json:"date"`
	Slots   []string `json:"availableSlots"`
}
