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

const taskColumns = `t.id, t.title, t.description, t.project_card_id, t.status, t.position, t.due_date, t.created_at, t.updated_at`

var errTaskNotFound = &internal_errors.NotFoundError{Message: "Task not found"}

func scanTask(row rowScanner) (domain.Task, error) {
	t := domain.Task{Labels: []domain.Label{}}
	err := row.Scan(&t.Id, &t.Title, &t.Description, &t.ProjectCardId, &t.Status, &t.Position, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// =========================================================================
// Public Methods (satisfy the service.TaskStorage interface)
// =========================================================================

// TaskLocation resolves a task to its card and board.
func (s *Storage) TaskLocation(ctx context.Context, id domain.TaskId) (domain.TaskLocation, error) {
	loc, err := taskLocation(ctx, s.db, id, false)
	return loc, sharedpg.Classify(err, "get task")
}

func (s *Storage) GetCardTasks(ctx context.Context, cardId domain.CardId) ([]domain.Task, error) {
	tasks, err := queryTasks(ctx, s.db, `t.project_card_id = $1`, cardId)
	return tasks, sharedpg.Classify(err, "get tasks")
}

func (s *Storage) GetTask(ctx context.Context, id domain.TaskId) (domain.Task, error) {
	task, err := getTask(ctx, s.db, id)
	return task, sharedpg.Classify(err, "get task")
}

// CreateTask appends a todo task to a project card.
func (s *Storage) CreateTask(ctx context.Context, data domain.TaskCreationData) (domain.Task, error) {
	var task domain.Task
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		loc, err := cardLocation(ctx, tx, data.ProjectCardId, true)
		if err != nil {
			return err
		}
		if loc.Type != domain.CardTypeProject {
			return &internal_errors.ValidationError{Message: "Tasks can only be added to project cards"}
		}
		pos, err := nextPosition(ctx, tx, "task", "project_card_id", data.ProjectCardId)
		if err != nil {
			return err
		}
		task, err = scanTask(tx.QueryRowContext(ctx, `
			INSERT INTO task AS t (id, title, description, project_card_id, status, position, due_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+taskColumns,
			uuid.NewString(), data.Title, data.Description, data.ProjectCardId, domain.StatusTodo, pos, data.DueDate))
		return err
	})
	return task, sharedpg.Classify(err, "create task")
}

// UpdateTask applies a merge-patch.
func (s *Storage) UpdateTask(ctx context.Context, id domain.TaskId, data domain.TaskUpdateData) (domain.Task, error) {
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
	if data.DueDate != nil {
		add("due_date", *data.DueDate)
	}
	if data.Position != nil {
		add("position", *data.Position)
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE task SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))

	var task domain.Task
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if err := expectAffected(res, errTaskNotFound, "update task"); err != nil {
			return err
		}
		task, err = getTask(ctx, tx, id)
		return err
	})
	return task, sharedpg.Classify(err, "update task")
}

// DeleteTask removes the task with its comments and label links.
func (s *Storage) DeleteTask(ctx context.Context, id domain.TaskId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM task WHERE id = $1`, id)
	if err != nil {
		return sharedpg.Classify(err, "delete task")
	}
	return expectAffected(res, errTaskNotFound, "delete task")
}

// AddLabelToTask links a board label to the task. Adding it twice is a no-op.
func (s *Storage) AddLabelToTask(ctx context.Context, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error) {
	var task domain.Task
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		loc, err := taskLocation(ctx, tx, taskId, true)
		if err != nil {
			return err
		}
		if err := labelOnBoard(ctx, tx, labelId, loc.BoardId); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO task_label (task_id, label_id, position)
			SELECT $1::uuid, $2::uuid, COALESCE(MAX(position), -1) + 1 FROM task_label WHERE task_id = $1::uuid
			ON CONFLICT DO NOTHING`,
			taskId, labelId,
		); err != nil {
			return err
		}
		task, err = getTask(ctx, tx, taskId)
		return err
	})
	return task, sharedpg.Classify(err, "add label")
}

func (s *Storage) RemoveLabelFromTask(ctx context.Context, taskId domain.TaskId, labelId domain.LabelId) (domain.Task, error) {
	var task domain.Task
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := taskLocation(ctx, tx, taskId, true); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM task_label WHERE task_id = $1 AND label_id = $2`, taskId, labelId,
		); err != nil {
			return err
		}
		var err error
		task, err = getTask(ctx, tx, taskId)
		return err
	})
	return task, sharedpg.Classify(err, "remove label")
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func taskLocation(ctx context.Context, q Querier, id domain.TaskId, lock bool) (domain.TaskLocation, error) {
	query := `
		SELECT t.id, t.project_card_id, l.board_id
		FROM task t
		JOIN card c ON c.id = t.project_card_id
		JOIN list l ON l.id = c.list_id
		WHERE t.id = $1`
	if lock {
		query += ` FOR UPDATE OF t`
	}
	var loc domain.TaskLocation
	err := q.QueryRowContext(ctx, query, id).Scan(&loc.TaskId, &loc.CardId, &loc.BoardId)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TaskLocation{}, errTaskNotFound
	}
	return loc, err
}

func getTask(ctx context.Context, q Querier, id domain.TaskId) (domain.Task, error) {
	tasks, err := queryTasks(ctx, q, `t.id = $1`, id)
	if err != nil {
		return domain.Task{}, err
	}
	if len(tasks) == 0 {
		return domain.Task{}, errTaskNotFound
	}
	return tasks[0], nil
}

// queryTasks loads tasks matching where (over task t) by position, with labels.
func queryTasks(ctx context.Context, q Querier, where string, args ...any) ([]domain.Task, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM task t WHERE %s
		ORDER BY t.position, t.created_at, t.id`, taskColumns, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	index := make(map[domain.TaskId]int)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		index[t.Id] = len(tasks)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	labelRows, err := q.QueryContext(ctx, fmt.Sprintf(`
		SELECT tl.task_id, lb.id, lb.text, lb.color, lb.board_id, lb.created_at
		FROM task_label tl
		JOIN label lb ON lb.id = tl.label_id
		JOIN task t ON t.id = tl.task_id
		WHERE %s
		ORDER BY tl.position, lb.text`, where), args...)
	if err != nil {
		return nil, err
	}
	defer labelRows.Close()
	for labelRows.Next() {
		var (
			taskId domain.TaskId
			l      domain.Label
		)
		if err := labelRows.Scan(&taskId, &l.Id, &l.Text, &l.Color, &l.BoardId, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task label: %w", err)
		}
		if i, ok := index[taskId]; ok {
			tasks[i].Labels = append(tasks[i].Labels, l)
		}
	}
	return tasks, labelRows.Err()
}
