package domain

import "time"

type ListCreationData struct {
	BoardId  BoardId
	Title    string
	Position *int // nil means after the last list
}

type ListUpdateData struct {
	Title    *string
	Position *int
}

type List struct {
	Id        ListId     `json:"id"`
	Title     string     `json:"title"`
	BoardId   BoardId    `json:"board_id"`
	Position  int        `json:"position"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Cards     []Card     `json:"cards"`
}
