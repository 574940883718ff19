package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClinicInfo is a singleton record describing the clinic itself: contact
// details, about text, weekly working hours and social links. The mobile app
// reads it for the contact screen, maps deep link and WhatsApp button.
type ClinicInfo struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null;default:'Dental Clinic'" json:"name"`
	Address      string    `gorm:"size:512;not null" json:"address"`
	City         string    `gorm:"size:100;not null" json:"city"`
	Country      string    `gorm:"size:100;not null;default:'Turkey'" json:"country"`
	PhonePrimary string    `gorm:"size:30;not null" json:"phonePrimary"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	WhatsApp     string    `gorm:"size:30;not null" json:"whatsAppNumber"`
	WebsiteURL   string    `gorm:"size:512" json:"websiteUrl"`
	// Business name or address passed to the maps app.
	MapsPlaceQuery string `gorm:"size:512;not null" json:"mapsPlaceQuery"`
	AboutTitle     string `gorm:"size:255;default:'About Our Clinic'" json:"aboutTitle"`
	AboutBody      string `gorm:"type:text" json:"aboutBody"`
	// [{"day":"monday","open":"09:00","close":"18:00","isClosed":false}, ...]
	WorkingHours datatypes.JSON `gorm:"type:jsonb" json:"workingHours"`
	// [{"type":"instagram","url":"..."}]
	SocialLinks    datatypes.JSON `gorm:"type:jsonb" json:"socialLinks"`
	EmergencyPhone string         `gorm:"size:30" json:"emergencyPhone"`
	IsActive       bool           `gorm:"default:true" json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (c *ClinicInfo) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
