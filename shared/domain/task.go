package domain

import "time"

type Task struct {
	Id            TaskId     `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	ProjectCardId CardId     `json:"project_card_id"`
	Status        Status     `json:"status"`
	Position      int        `json:"position"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Labels        []Label    `json:"labels"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type TaskCreationData struct {
	ProjectCardId CardId
	Title         string
	Description   *string
	DueDate       *time.Time
}

type TaskUpdateData struct {
	Title       *string
	Description *string
	Status      *Status
	DueDate     *time.Time
	Position    *int
}

func (d TaskUpdateData) Empty() bool {
	return d.Title == nil && d.Description == nil && d.Status == nil && d.DueDate == nil && d.Position == nil
}

// TaskLocation resolves a task to its project card and board.
type TaskLocation struct {
	TaskId  TaskId
	CardId  CardId
	BoardId BoardId
}
