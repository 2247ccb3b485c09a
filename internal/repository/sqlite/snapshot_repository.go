package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/codernaccotax/quizdrill/internal/logger"
	"github.com/codernaccotax/quizdrill/internal/repository"
)

type snapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository implementation
func NewSnapshotRepository(db *sql.DB) repository.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("loading snapshot: key=%s", key)

	var data []byte
	err := r.db.QueryRowContext(ctx, `
SELECT data FROM snapshots WHERE key = ?
`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no snapshot stored: key=%s", key)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load snapshot: %v", err)
		return nil, err
	}
	log.Debug("snapshot loaded: key=%s, size=%d", key, len(data))
	return data, nil
}

func (r *snapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("saving snapshot: key=%s, size=%d", key, len(data))

	_, err := r.db.ExecContext(ctx, `
INSERT INTO snapshots (key, data, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
`, key, data)
	if err != nil {
		log.Error("failed to save snapshot: %v", err)
	}
	return err
}

func (r *snapshotRepository) Clear(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("clearing snapshot: key=%s", key)

	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key)
	if err != nil {
		log.Error("failed to clear snapshot: %v", err)
	}
	return err
}
