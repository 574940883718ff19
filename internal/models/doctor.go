package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Doctor struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Surname    string    `gorm:"size:100" json:"surname"`
	Title      string    `gorm:"size:50" json:"title"`
	Specialty  string    `gorm:"size:100;not null;index" json:"specialty"`
	University string    `gorm:"size:200" json:"university"`
	Experience string    `gorm:"size:100" json:"experience"`
	Phone      string    `gorm:"size:30;not null" json:"phone"`
	Email      string    `gorm:"size:255" json:"email"`
	ImageURL   string    `gorm:"size:512" json:"imageUrl"`
	Bio        string    `gorm:"type:text" json:"bio"`
	Rating     float64   `gorm:"default:0" json:"rating"`
	Patients   int       `gorm:"default:0" json:"patients"`
	// Comma-joined on input, stored as a jsonb array.
	Languages datatypes.JSON `gorm:"type:jsonb" json:"languages"`
	// Weekly schedule: {"monday":{"start":"09:00","end":"18:00"}, ...}
	AvailableHours datatypes.JSON `gorm:"type:jsonb" json:"availableHours"`
	IsActive       bool           `gorm:"default:true;index" json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// FullName is the display form the mobile app shows: "Dr. Ayşe Yılmaz".
func (d *Doctor) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.Title, d.Name, d.Surname} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
