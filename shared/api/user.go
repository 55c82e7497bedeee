package api

// Request DTOs

// UpdateProfileRequest sets third-party usernames. An empty string clears one.
type UpdateProfileRequest struct {
	GithubUsername *string `json:"github_username,omitempty"`
	GitlabUsername *string `json:"gitlab_username,omitempty"`
}

// Response DTOs
// Note: /me returns domain.User directly

type MessageResponse struct {
	Message string `json:"message"`
}
