package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/flvvius/hackathon-sisc-2025/shared/config"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
	sharedpg "github.com/flvvius/hackathon-sisc-2025/shared/storage/pg"
)

//go:embed migrations/init.sql
var schema string

type Querier = sharedpg.Querier

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "driver", cfg.PgDriver(), "host", cfg.Private.Pg.Host)
	db, err := sharedpg.Connect(ctx, cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")

	s := &Storage{db: db}
	if cfg.Public.MigrateOnStart {
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

// NewFromDB wraps an already opened pool.
func NewFromDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return sharedpg.WithTx(ctx, s.db, fn)
}

// nextPosition is max(position)+1 over table rows whose parent column equals
// parentId, or 0 when there are none. Callers lock the parent row first so
// concurrent inserts cannot pick the same value. table and parent are
// constants supplied by this package.
func nextPosition(ctx context.Context, q Querier, table, parent, parentId string) (int, error) {
	var pos int
	err := q.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COALESCE(MAX(position), -1) + 1 FROM %s WHERE %s = $1`, table, parent),
		parentId,
	).Scan(&pos)
	return pos, err
}
