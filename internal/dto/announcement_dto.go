package dto

import "time"

type AnnouncementRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ImageURL       string     `json:"imageUrl"`
	Type           string     `json:"type"`
	Priority       int        `json:"priority"`
	TargetAudience string     `json:"targetAudience"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}
