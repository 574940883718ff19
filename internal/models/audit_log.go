package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records one admin action (CREATE_BLOG, UPDATE_USER_ROLE, ...).
// Written best-effort by the audit middleware; a failed write never blocks
// the request.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID   string         `gorm:"size:64;not null;index:idx_audit_admin_ts" json:"adminId"`
	Action    string         `gorm:"size:100;not null;index:idx_audit_action_ts" json:"action"`
	Method    string         `gorm:"size:10;not null" json:"method"`
	Endpoint  string         `gorm:"size:255;not null" json:"endpoint"`
	IP        string         `gorm:"size:45" json:"ip"`
	UserAgent string         `gorm:"size:255" json:"userAgent"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	Timestamp time.Time      `gorm:"not null;index:idx_audit_admin_ts;index:idx_audit_action_ts" json:"timestamp"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// SystemLog stores ERROR+ records flushed by the logging DB handler.
type SystemLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Level     string         `gorm:"size:10;not null;index" json:"level"`
	Message   string         `gorm:"type:text" json:"message"`
	UserID    *string        `gorm:"size:36" json:"userId"`
	Action    string         `gorm:"size:100" json:"action"`
	Error     string         `gorm:"type:text" json:"error"`
	Extra     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (l *SystemLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
