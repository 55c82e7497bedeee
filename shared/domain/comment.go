package domain

import "time"

// Comment attaches to exactly one of a card or a task.
type Comment struct {
	Id            CommentId `json:"id"`
	Text          string    `json:"text"`
	Author        UserId    `json:"author"`
	ProjectCardId *CardId   `json:"project_card_id,omitempty"`
	TaskId        *TaskId   `json:"task_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type CommentTarget struct {
	CardId *CardId
	TaskId *TaskId
}

func (t CommentTarget) Valid() bool {
	return (t.CardId == nil) != (t.TaskId == nil)
}

type CommentCreationData struct {
	Target CommentTarget
	Text   string
	Author UserId
}
