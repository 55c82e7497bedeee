package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	sharedpg "github.com/flvvius/hackathon-sisc-2025/shared/storage/pg"
	"github.com/google/uuid"
)

const labelColumns = `id, text, color, board_id, created_at`

var (
	errLabelNotFound = &internal_errors.NotFoundError{Message: "Label not found"}
	errLabelExists   = &internal_errors.ConflictError{Message: "A label with this text and color already exists on this board"}
)

func scanLabel(row rowScanner) (domain.Label, error) {
	var l domain.Label
	err := row.Scan(&l.Id, &l.Text, &l.Color, &l.BoardId, &l.CreatedAt)
	return l, err
}

// =========================================================================
// Public Methods (satisfy the service.LabelStorage interface)
// =========================================================================

func (s *Storage) GetBoardLabels(ctx context.Context, boardId domain.BoardId) ([]domain.Label, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+labelColumns+` FROM label WHERE board_id = $1 ORDER BY text, color`, boardId)
	if err != nil {
		return nil, sharedpg.Classify(err, "get labels")
	}
	defer rows.Close()

	labels := []domain.Label{}
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, sharedpg.Classify(err, "get labels")
		}
		labels = append(labels, l)
	}
	return labels, sharedpg.Classify(rows.Err(), "get labels")
}

func (s *Storage) GetLabel(ctx context.Context, id domain.LabelId) (domain.Label, error) {
	l, err := scanLabel(s.db.QueryRowContext(ctx, `SELECT `+labelColumns+` FROM label WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Label{}, errLabelNotFound
	}
	return l, sharedpg.Classify(err, "get label")
}

func (s *Storage) CreateLabel(ctx context.Context, data domain.LabelCreationData) (domain.Label, error) {
	l, err := scanLabel(s.db.QueryRowContext(ctx, `
		INSERT INTO label (id, text, color, board_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+labelColumns,
		uuid.NewString(), data.Text, data.Color, data.BoardId))
	return l, classifyLabelErr(err, "create label")
}

func (s *Storage) UpdateLabel(ctx context.Context, id domain.LabelId, data domain.LabelUpdateData) (domain.Label, error) {
	l, err := scanLabel(s.db.QueryRowContext(ctx, `
		UPDATE label SET
			text = COALESCE($2, text),
			color = COALESCE($3, color)
		WHERE id = $1
		RETURNING `+labelColumns,
		id, data.Text, data.Color))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Label{}, errLabelNotFound
	}
	return l, classifyLabelErr(err, "update label")
}

// DeleteLabel removes the label from the board and from every card and task.
func (s *Storage) DeleteLabel(ctx context.Context, id domain.LabelId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM label WHERE id = $1`, id)
	if err != nil {
		return sharedpg.Classify(err, "delete label")
	}
	return expectAffected(res, errLabelNotFound, "delete label")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func classifyLabelErr(err error, op string) error {
	if code, ok := sharedpg.SQLState(err); ok && code == sharedpg.CodeUniqueViolation {
		return errLabelExists
	}
	return sharedpg.Classify(err, op)
}

// upsertLabel returns the id of the board label with ref's text and color,
// creating it if needed.
func upsertLabel(ctx context.Context, q Querier, boardId domain.BoardId, ref domain.LabelRef) (domain.LabelId, error) {
	var id domain.LabelId
	err := q.QueryRowContext(ctx, `
		INSERT INTO label (id, text, color, board_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (board_id, text, color) DO UPDATE SET text = EXCLUDED.text
		RETURNING id`,
		uuid.NewString(), ref.Text, ref.Color, boardId).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to upsert label: %w", err)
	}
	return id, nil
}

// labelOnBoard checks that the label exists and belongs to boardId.
func labelOnBoard(ctx context.Context, q Querier, labelId domain.LabelId, boardId domain.BoardId) error {
	var labelBoard domain.BoardId
	err := q.QueryRowContext(ctx, `SELECT board_id FROM label WHERE id = $1`, labelId).Scan(&labelBoard)
	if errors.Is(err, sql.ErrNoRows) {
		return errLabelNotFound
	}
	if err != nil {
		return err
	}
	if labelBoard != boardId {
		return &internal_errors.ValidationError{Message: "Label belongs to another board"}
	}
	return nil
}
