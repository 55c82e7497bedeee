package domain

import "time"

type Label struct {
	Id        LabelId    `json:"id"`
	Text      string     `json:"text"`
	Color     LabelColor `json:"color"`
	BoardId   BoardId    `json:"board_id"`
	CreatedAt time.Time  `json:"created_at"`
}

type LabelCreationData struct {
	BoardId BoardId
	Text    string
	Color   LabelColor
}

type LabelUpdateData struct {
	Text  *string
	Color *LabelColor
}
