package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	internal_errors "github.com/flvvius/hackathon-sisc-2025/shared/errors"
	sharedpg "github.com/flvvius/hackathon-sisc-2025/shared/storage/pg"
	"github.com/google/uuid"
)

const cardColumns = `c.id, c.title, c.description, c.list_id, c.position, c.type, c.status, c.assignees, c.author_id, c.created_at, c.updated_at`

var errCardNotFound = &internal_errors.NotFoundError{Message: "Card not found"}

func scanCard(row rowScanner) (domain.Card, error) {
	var (
		c         domain.Card
		status    *domain.Status
		assignees domain.Assignees
		author    *string
	)
	err := row.Scan(&c.Id, &c.Title, &c.Description, &c.ListId, &c.Position, &c.Type, &status, &assignees, &author, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Card{}, err
	}
	if c.Type.HasWork() {
		c.Work = &domain.WorkDetails{Labels: []domain.LabelRef{}, Assignees: assignees}
		if status != nil {
			c.Work.Status = *status
		}
		if c.Work.Assignees == nil {
			c.Work.Assignees = domain.Assignees{}
		}
	} else {
		c.Comment = &domain.CommentDetails{}
		if author != nil {
			c.Comment.Author = *author
		}
	}
	return c, nil
}

// =========================================================================
// Public Methods (satisfy the service.CardStorage interface)
// =========================================================================

// CardLocation resolves a card to its list and board.
func (s *Storage) CardLocation(ctx context.Context, id domain.CardId) (domain.CardLocation, error) {
	loc, err := cardLocation(ctx, s.db, id, false)
	return loc, sharedpg.Classify(err, "get card")
}

func (s *Storage) GetCard(ctx context.Context, id domain.CardId) (domain.Card, error) {
	card, err := s.getCard(ctx, s.db, id)
	return card, sharedpg.Classify(err, "get card")
}

// CreateCard appends the card to its list (position max+1) and writes the
// inline labels through to the board's labels.
func (s *Storage) CreateCard(ctx context.Context, data domain.CardCreationData) (domain.Card, error) {
	var card domain.Card
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		boardId, err := lockList(ctx, tx, data.ListId)
		if err != nil {
			return err
		}
		pos, err := nextPosition(ctx, tx, "card", "list_id", data.ListId)
		if err != nil {
			return err
		}

		var (
			status    *domain.Status
			author    *domain.UserId
			assignees domain.Assignees
		)
		if data.Type.HasWork() {
			st := domain.StatusTodo
			if data.Status != nil {
				st = *data.Status
			}
			status = &st
			assignees = data.Assignees
		} else {
			author = &data.Author
		}

		id := uuid.NewString()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO card (id, title, description, list_id, position, type, status, assignees, author_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id, data.Title, data.Description, data.ListId, pos, data.Type, status, assignees, author,
		); err != nil {
			return fmt.Errorf("failed to insert card: %w", err)
		}
		if data.Type.HasWork() {
			if err := setCardLabels(ctx, tx, id, boardId, data.Labels); err != nil {
				return err
			}
		}
		card, err = s.getCard(ctx, tx, id)
		return err
	})
	return card, sharedpg.Classify(err, "create card")
}

// UpdateCard applies a merge-patch. Labels, when given, replace the card's
// label set.
func (s *Storage) UpdateCard(ctx context.Context, id domain.CardId, data domain.CardUpdateData) (domain.Card, error) {
	var card domain.Card
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		loc, err := cardLocation(ctx, tx, id, true)
		if err != nil {
			return err
		}

		set := []string{"updated_at = now()"}
		args := []any{}
		add := func(column string, value any) {
			args = append(args, value)
			set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
		}
		if data.Title != nil {
			add("title", *data.Title)
		}
		if data.Description != nil {
			add("description", domain.StrPtr(*data.Description))
		}
		if data.Status != nil {
			add("status", *data.Status)
		}
		if data.Assignees != nil {
			add("assignees", *data.Assignees)
		}
		args = append(args, id)
		query := fmt.Sprintf(`UPDATE card SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}

		if data.Labels != nil {
			if err := setCardLabels(ctx, tx, id, loc.BoardId, *data.Labels); err != nil {
				return err
			}
		}
		card, err = s.getCard(ctx, tx, id)
		return err
	})
	return card, sharedpg.Classify(err, "update card")
}

// MoveCard moves the card to the end of targetListId, provided it is still
// in sourceListId. A card that has moved elsewhere meanwhile is a
// ConflictError and stays where it is.
func (s *Storage) MoveCard(ctx context.Context, id domain.CardId, sourceListId, targetListId domain.ListId) (domain.Card, error) {
	var card domain.Card
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		loc, err := cardLocation(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if loc.ListId != sourceListId {
			return &internal_errors.ConflictError{Message: "Card is no longer in the source list"}
		}

		targetBoard, err := lockList(ctx, tx, targetListId)
		if err != nil {
			if internal_errors.Is[*internal_errors.NotFoundError](err) {
				return &internal_errors.NotFoundError{Message: "Target list not found"}
			}
			return err
		}
		if targetBoard != loc.BoardId {
			return &internal_errors.ValidationError{Message: "Cards can only move between lists of the same board"}
		}

		pos, err := nextPosition(ctx, tx, "card", "list_id", targetListId)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE card SET list_id = $2, position = $3, updated_at = now() WHERE id = $1`,
			id, targetListId, pos,
		); err != nil {
			return fmt.Errorf("failed to move card: %w", err)
		}
		card, err = s.getCard(ctx, tx, id)
		return err
	})
	return card, sharedpg.Classify(err, "move card")
}

// DeleteCard removes the card with its tasks, comments and label links.
func (s *Storage) DeleteCard(ctx context.Context, id domain.CardId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM card WHERE id = $1`, id)
	if err != nil {
		return sharedpg.Classify(err, "delete card")
	}
	return expectAffected(res, errCardNotFound, "delete card")
}

// AddLabelToCard links an existing board label to the card. Adding a label
// twice is a no-op.
func (s *Storage) AddLabelToCard(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	var card domain.Card
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		loc, err := cardLocation(ctx, tx, cardId, true)
		if err != nil {
			return err
		}
		if !loc.Type.HasWork() {
			return &internal_errors.ValidationError{Message: "Comment cards cannot have labels"}
		}
		if err := labelOnBoard(ctx, tx, labelId, loc.BoardId); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO project_label (card_id, label_id, position)
			SELECT $1::uuid, $2::uuid, COALESCE(MAX(position), -1) + 1 FROM project_label WHERE card_id = $1::uuid
			ON CONFLICT DO NOTHING`,
			cardId, labelId,
		); err != nil {
			return err
		}
		card, err = s.getCard(ctx, tx, cardId)
		return err
	})
	return card, sharedpg.Classify(err, "add label")
}

func (s *Storage) RemoveLabelFromCard(ctx context.Context, cardId domain.CardId, labelId domain.LabelId) (domain.Card, error) {
	var card domain.Card
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := cardLocation(ctx, tx, cardId, true); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM project_label WHERE card_id = $1 AND label_id = $2`, cardId, labelId,
		); err != nil {
			return err
		}
		var err error
		card, err = s.getCard(ctx, tx, cardId)
		return err
	})
	return card, sharedpg.Classify(err, "remove label")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func cardLocation(ctx context.Context, q Querier, id domain.CardId, lock bool) (domain.CardLocation, error) {
	query := `
		SELECT c.id, c.list_id, l.board_id, c.type
		FROM card c
		JOIN list l ON l.id = c.list_id
		WHERE c.id = $1`
	if lock {
		query += ` FOR UPDATE OF c`
	}
	var loc domain.CardLocation
	err := q.QueryRowContext(ctx, query, id).Scan(&loc.CardId, &loc.ListId, &loc.BoardId, &loc.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CardLocation{}, errCardNotFound
	}
	return loc, err
}

// lockList locks the list row (serialising position assignment within it)
// and returns its board.
func lockList(ctx context.Context, q Querier, id domain.ListId) (domain.BoardId, error) {
	var boardId domain.BoardId
	err := q.QueryRowContext(ctx, `SELECT board_id FROM list WHERE id = $1 FOR UPDATE`, id).Scan(&boardId)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errListNotFound
	}
	return boardId, err
}

func (s *Storage) getCard(ctx context.Context, q Querier, id domain.CardId) (domain.Card, error) {
	cards, err := s.queryCards(ctx, q, `c.id = $1`, id)
	if err != nil {
		return domain.Card{}, err
	}
	if len(cards) == 0 {
		return domain.Card{}, errCardNotFound
	}
	return cards[0], nil
}

// queryCards loads cards matching where (over card c and list l) ordered by
// list and card position, with their labels attached.
func (s *Storage) queryCards(ctx context.Context, q Querier, where string, args ...any) ([]domain.Card, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM card c
		JOIN list l ON l.id = c.list_id
		WHERE %s
		ORDER BY l.position, c.position, c.created_at, c.id`, cardColumns, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []domain.Card{}
	index := make(map[domain.CardId]int)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		index[c.Id] = len(cards)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return cards, nil
	}

	labelRows, err := q.QueryContext(ctx, fmt.Sprintf(`
		SELECT pl.card_id, lb.text, lb.color
		FROM project_label pl
		JOIN label lb ON lb.id = pl.label_id
		JOIN card c ON c.id = pl.card_id
		JOIN list l ON l.id = c.list_id
		WHERE %s
		ORDER BY pl.position, lb.text`, where), args...)
	if err != nil {
		return nil, err
	}
	defer labelRows.Close()
	for labelRows.Next() {
		var (
			cardId domain.CardId
			ref    domain.LabelRef
		)
		if err := labelRows.Scan(&cardId, &ref.Text, &ref.Color); err != nil {
			return nil, fmt.Errorf("failed to scan card label: %w", err)
		}
		if i, ok := index[cardId]; ok && cards[i].Work != nil {
			cards[i].Work.Labels = append(cards[i].Work.Labels, ref)
		}
	}
	return cards, labelRows.Err()
}

// setCardLabels makes the card's label set exactly labels, creating board
// labels that do not exist yet (matched by text and color).
func setCardLabels(ctx context.Context, q Querier, cardId domain.CardId, boardId domain.BoardId, labels []domain.LabelRef) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM project_label WHERE card_id = $1`, cardId); err != nil {
		return fmt.Errorf("failed to clear card labels: %w", err)
	}
	for i, ref := range labels {
		labelId, err := upsertLabel(ctx, q, boardId, ref)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx,
			`INSERT INTO project_label (card_id, label_id, position) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			cardId, labelId, i,
		); err != nil {
			return fmt.Errorf("failed to link card label: %w", err)
		}
	}
	return nil
}
