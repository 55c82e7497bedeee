package api

import "github.com/flvvius/hackathon-sisc-2025/shared/domain"

type CreateLabelRequest struct {
	Text  string            `json:"text" validate:"required"`
	Color domain.LabelColor `json:"color" validate:"required"`
}

type UpdateLabelRequest struct {
	Text  *string            `json:"text,omitempty"`
	Color *domain.LabelColor `json:"color,omitempty"`
}

type LabelsResponse struct {
	Labels []domain.Label `json:"labels"`
}
