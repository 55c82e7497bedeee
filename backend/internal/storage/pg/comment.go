package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	sharedpg "github.com/flvvius/hackathon-sisc-2025/shared/storage/pg"
	"github.com/google/uuid"
)

const commentColumns = `id, text, author_id, project_card_id, task_id, created_at`

var errCommentNotFound = &internal_errors.NotFoundError{Message: "Comment not found"}

func scanComment(row rowScanner) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.Id, &c.Text, &c.Author, &c.ProjectCardId, &c.TaskId, &c.CreatedAt)
	return c, err
}

// =========================================================================
// Public Methods (satisfy the service.CommentStorage interface)
// =========================================================================

// GetComments returns the comments of a card or a task, oldest first.
func (s *Storage) GetComments(ctx context.Context, target domain.CommentTarget) ([]domain.Comment, error) {
	column, id := commentParent(target)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comment WHERE `+column+` = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, sharedpg.Classify(err, "get comments")
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, sharedpg.Classify(err, "get comments")
		}
		comments = append(comments, c)
	}
	return comments, sharedpg.Classify(rows.Err(), "get comments")
}

func (s *Storage) GetComment(ctx context.Context, id domain.CommentId) (domain.Comment, error) {
	c, err := scanComment(s.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comment WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Comment{}, errCommentNotFound
	}
	return c, sharedpg.Classify(err, "get comment")
}

func (s *Storage) AddComment(ctx context.Context, data domain.CommentCreationData) (domain.Comment, error) {
	if !data.Target.Valid() {
		return domain.Comment{}, &internal_errors.ValidationError{Message: "A comment belongs to exactly one card or task"}
	}
	c, err := scanComment(s.db.QueryRowContext(ctx, `
		INSERT INTO comment (id, text, author_id, project_card_id, task_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+commentColumns,
		uuid.NewString(), data.Text, data.Author, data.Target.CardId, data.Target.TaskId))
	return c, sharedpg.Classify(err, "add comment")
}

func (s *Storage) DeleteComment(ctx context.Context, id domain.CommentId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comment WHERE id = $1`, id)
	if err != nil {
		return sharedpg.Classify(err, "delete comment")
	}
	return expectAffected(res, errCommentNotFound, "delete comment")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

// commentParent picks the parent column; target must be valid.
func commentParent(target domain.CommentTarget) (string, string) {
	if target.TaskId != nil {
		return "task_id", *target.TaskId
	}
	if target.CardId != nil {
		return "project_card_id", *target.CardId
	}
	return "project_card_id", ""
}
