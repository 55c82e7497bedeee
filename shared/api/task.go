package api

import (
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *domain.Status `json:"status,omitempty"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Position    *int           `json:"position,omitempty" validate:"omitempty,gte=0"`
}

type TaskResponse struct {
	domain.Task
	DescriptionHTML string `json:"description_html,omitempty"`
}

type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

func NewTaskResponse(t domain.Task, render Renderer) TaskResponse {
	resp := TaskResponse{Task: t}
	if t.Description != nil && render != nil {
		resp.DescriptionHTML = render(*t.Description)
	}
	return resp
}
