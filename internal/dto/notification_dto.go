package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationRequest struct {
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	BlogID         *uuid.UUID `json:"blogId"`
	TargetAudience string     `json:"targetAudience"`
	ScheduledFor   *time.Time `json:"scheduledFor"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	// SendPush fans the notification out to registered devices on create.
	SendPush bool `json:"sendPush"`
}

type RegisterPushTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}
