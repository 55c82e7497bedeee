package domain

import "time"

type User struct {
	Id             UserId     `json:"id"`
	Name           *string    `json:"name,omitempty"`
	Email          *string    `json:"email,omitempty"`
	ImageUrl       *string    `json:"image_url,omitempty"`
	GithubUsername *string    `json:"github_username,omitempty"`
	GitlabUsername *string    `json:"gitlab_username,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Identity is what the identity provider asserts about the caller.
// Empty strings mean the attribute was not supplied.
type Identity struct {
	Id       UserId
	Name     string
	Email    string
	ImageUrl string
}

type ProfileUpdateData struct {
	GithubUsername *string
	GitlabUsername *string
}
