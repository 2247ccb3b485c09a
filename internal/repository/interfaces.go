package repository

import (
	"context"

	"github.com/codernaccotax/quizdrill/internal/models"
)

// SnapshotRepository is the persistence capability injected into the engine:
// a durable key-value store holding one serialized session snapshot per key,
// last-write-wins. Load returns (nil, nil) when no snapshot exists.
type SnapshotRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Clear(ctx context.Context, key string) error
}

// AttemptRepository records finished sessions for the history page.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) (int64, error)
	List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error)
	Count(ctx context.Context, filter models.AttemptFilter) (int, error)
}
