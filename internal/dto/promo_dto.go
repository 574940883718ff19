package dto

import "github.com/google/uuid"

type PromoRequest struct {
	Title      string     `json:"title"`
	Highlight  string     `json:"highlight"`
	ImageURL   string     `json:"imageUrl"`
	SortOrder  int        `json:"order"`
	DoctorID   *uuid.UUID `json:"doctorId"`
	TargetType string     `json:"targetType"`
	TargetID   *uuid.UUID `json:"targetId"`
	TargetURL  string     `json:"targetUrl"`
}

// ReorderRequest carries the full new ordering, first id shown first.
type ReorderRequest struct {
	IDs []uuid.UUID `json:"ids"`
}
