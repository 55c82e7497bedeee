package pg

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	sharedpg "github.com/flvvius/hackathon-sisc-2025/shared/storage/pg"
)

const userColumns = `id, name, email, image_url, github_username, gitlab_username, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.Id, &u.Name, &u.Email, &u.ImageUrl, &u.GithubUsername, &u.GitlabUsername, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// =========================================================================
// Public Methods (satisfy the service.UserStorage interface)
// =========================================================================

// EnsureUser upserts the user keyed by the identity provider id. Profile
// attributes the provider supplied overwrite stored ones; third-party
// usernames are never touched here.
func (s *Storage) EnsureUser(ctx context.Context, identity domain.Identity) (domain.User, error) {
	user, err := s.ensureUser(ctx, s.db, identity)
	return user, sharedpg.Classify(err, "ensure user")
}

func (s *Storage) GetUser(ctx context.Context, id domain.UserId) (domain.User, error) {
	user, err := s.getUser(ctx, s.db, id)
	return user, sharedpg.Classify(err, "get user")
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM "user" WHERE lower(email) = lower($1)`, strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, &internal_errors.NotFoundError{Message: "No user with that email address"}
	}
	return user, sharedpg.Classify(err, "get user")
}

// UpdateProfile sets the supplied usernames; an empty string clears one.
func (s *Storage) UpdateProfile(ctx context.Context, id domain.UserId, data domain.ProfileUpdateData) (domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, `
		UPDATE "user" SET
			github_username = CASE WHEN $2 THEN NULLIF($3, '') ELSE github_username END,
			gitlab_username = CASE WHEN $4 THEN NULLIF($5, '') ELSE gitlab_username END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id,
		data.GithubUsername != nil, deref(data.GithubUsername),
		data.GitlabUsername != nil, deref(data.GitlabUsername),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, &internal_errors.NotFoundError{Message: "User not found"}
	}
	return user, sharedpg.Classify(err, "update profile")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) ensureUser(ctx context.Context, q Querier, identity domain.Identity) (domain.User, error) {
	return scanUser(q.QueryRowContext(ctx, `
		INSERT INTO "user" (id, name, email, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = COALESCE(EXCLUDED.name, "user".name),
			email = COALESCE(EXCLUDED.email, "user".email),
			image_url = COALESCE(EXCLUDED.image_url, "user".image_url),
			updated_at = CASE
				WHEN ("user".name, "user".email, "user".image_url) IS DISTINCT FROM
					(COALESCE(EXCLUDED.name, "user".name), COALESCE(EXCLUDED.email, "user".email), COALESCE(EXCLUDED.image_url, "user".image_url))
				THEN now()
				ELSE "user".updated_at
			END
		RETURNING `+userColumns,
		identity.Id,
		domain.StrPtr(identity.Name),
		domain.StrPtr(identity.Email),
		domain.StrPtr(identity.ImageUrl),
	))
}

func (s *Storage) getUser(ctx context.Context, q Querier, id domain.UserId) (domain.User, error) {
	user, err := scanUser(q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, &internal_errors.NotFoundError{Message: "User not found"}
	}
	return user, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
