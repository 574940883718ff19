package services

import (
	"encoding/json"
	"testing"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedDoctor(t *testing.T, db *gorm.DB, hours map[string]dto.WorkingWindow) *models.Doctor {
	t.Helper()
	doctor := &models.Doctor{
		ID:        uuid.New(),
		Name:      "Ayşe",
		Surname:   "Yılmaz",
		Title:     "Dr.",
		Specialty: "Orthodontics",
		Phone:     "+905550001122",
		IsActive:  true,
	}
	if hours != nil {
		raw, err := json.Marshal(hours)
		require.NoError(t, err)
		doctor.AvailableHours = datatypes.JSON(raw)
	}
	require.NoError(t, db.Create(doctor).Error)
	return doctor
}

func newAppointmentService(t *testing.T) (*AppointmentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	return NewAppointmentService(db, newTestCipher(t, cfg)), db
}

func bookReq(doctorID uuid.UUID, date, at string) *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		DoctorID:     doctorID,
		Date:         date,
		Time:         at,
		PatientName:  "Ada Lovelace",
		PatientPhone: "+905551112233",
		PatientEmail: "ADA@CLINIC.COM",
	}
}

// 2026-09-07 is a Monday.
const testDate = "2026-09-07"

func TestBookEncryptsContactFields(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)
	patientID := uuid.New()

	view, err := svc.Book(patientID, bookReq(doctor.ID, testDate, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, "+905551112233", view.PatientPhone)
	assert.Equal(t, "ada@clinic.com", view.PatientEmail)
	assert.Equal(t, models.AppointmentScheduled, view.Status)
	assert.Equal(t, "Dr. Ayşe Yılmaz", view.DoctorName)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, "id = ?", view.ID).Error)
	assert.NotEqual(t, "+905551112233", stored.PatientPhone)
	assert.NotEqual(t, "ada@clinic.com", stored.PatientEmail)
}

func TestBookSlotConflict(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)

	_, err := svc.Book(uuid.New(), bookReq(doctor.ID, testDate, "10:00"))
	require.NoError(t, err)

	_, err = svc.Book(uuid.New(), bookReq(doctor.ID, testDate, "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// A different slot on the same day is fine.
	_, err = svc.Book(uuid.New(), bookReq(doctor.ID, testDate, "10:30"))
	assert.NoError(t, err)
}

func TestBookCancelledSlotIsFreeAgain(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)
	patientID := uuid.New()

	first, err := svc.Book(patientID, bookReq(doctor.ID, testDate, "11:00"))
	require.NoError(t, err)
	_, err = svc.Cancel(first.ID, patientID)
	require.NoError(t, err)

	_, err = svc.Book(uuid.New(), bookReq(doctor.ID, testDate, "11:00"))
	assert.NoError(t, err)
}

func TestBookInactiveDoctor(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)
	require.NoError(t, db.Model(doctor).Update("is_active", false).Error)

	_, err := svc.Book(uuid.New(), bookReq(doctor.ID, testDate, "10:00"))
	assert.ErrorIs(t, err, ErrDoctorUnavailable)
}

func TestBookRejectsOffGridTime(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)

	_, err := svc.Book(uuid.New(), bookReq(doctor.ID, testDate, "10:15"))
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = svc.Book(uuid.New(), bookReq(doctor.ID, "07-09-2026", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestCancelRules(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)
	owner := uuid.New()

	appt, err := svc.Book(owner, bookReq(doctor.ID, testDate, "14:00"))
	require.NoError(t, err)

	_, err = svc.Cancel(appt.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotAppointmentOwner)

	_, err = svc.SetStatus(appt.ID, &dto.AppointmentStatusRequest{Status: models.AppointmentCompleted})
	require.NoError(t, err)

	_, err = svc.Cancel(appt.ID, owner)
	assert.ErrorIs(t, err, ErrCancelCompleted)
}

func TestSetStatusValidation(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)

	appt, err := svc.Book(uuid.New(), bookReq(doctor.ID, testDate, "15:00"))
	require.NoError(t, err)

	_, err = svc.SetStatus(appt.ID, &dto.AppointmentStatusRequest{Status: "rescheduled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := svc.SetStatus(appt.ID, &dto.AppointmentStatusRequest{Status: models.AppointmentConfirmed})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, updated.Status)
}

func TestAvailableSlotsIntersectsDoctorHours(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, map[string]dto.WorkingWindow{
		"monday": {Start: "09:00", End: "11:00"},
	})

	slots, err := svc.AvailableSlots(doctor.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)

	_, err = svc.Book(uuid.New(), bookReq(doctor.ID, testDate, "09:30"))
	require.NoError(t, err)

	slots, err = svc.AvailableSlots(doctor.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "10:30"}, slots)
}

func TestAvailableSlotsDayOff(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, map[string]dto.WorkingWindow{
		"tuesday": {Start: "09:00", End: "18:00"},
	})

	// Monday is not in the schedule at all.
	slots, err := svc.AvailableSlots(doctor.ID, testDate)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsFullGridWithoutSchedule(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)

	slots, err := svc.AvailableSlots(doctor.ID, testDate)
	require.NoError(t, err)
	assert.Len(t, slots, len(clinicSlots))
}

func TestGetOwnerAndAdminAccess(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)
	owner := uuid.New()

	appt, err := svc.Book(owner, bookReq(doctor.ID, testDate, "16:00"))
	require.NoError(t, err)

	_, err = svc.Get(appt.ID, owner, false)
	assert.NoError(t, err)

	_, err = svc.Get(appt.ID, uuid.New(), false)
	assert.ErrorIs(t, err, ErrNotAppointmentOwner)

	_, err = svc.Get(appt.ID, uuid.New(), true)
	assert.NoError(t, err)
}

func TestAdminListFilters(t *testing.T) {
	svc, db := newAppointmentService(t)
	doctor := seedDoctor(t, db, nil)
	other := seedDoctor(t, db, nil)

	_, err := svc.Book(uuid.New(), bookReq(doctor.ID, testDate, "09:00"))
	require.NoError(t, err)
	_, err = svc.Book(uuid.New(), bookReq(other.ID, testDate, "09:00"))
	require.NoError(t, err)

	appts, pagination, err := svc.AdminList(&dto.AppointmentListQuery{DoctorID: doctor.ID.String()})
	require.NoError(t, err)
	assert.Len(t, appts, 1)
	assert.EqualValues(t, 1, pagination.TotalItems)

	_, _, err = svc.AdminList(&dto.AppointmentListQuery{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
