package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Title       string
	Description *string
	OwnerId     UserId
	Lists       []ListCreationData
}

type BoardUpdateData struct {
	Title       *string
	Description *string
}

type Board struct {
	Id          BoardId    `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	OwnerUserId UserId     `json:"owner_user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Lists       []List     `json:"lists,omitempty"`
}

type Membership struct {
	BoardId   BoardId    `json:"board_id"`
	UserId    UserId     `json:"user_id"`
	Role      Role       `json:"role"`
	User      *User      `json:"user,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
