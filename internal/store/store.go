// Package store persists editor snapshots, user accounts and the media
// library. Two implementations exist: a local sqlite file (the default) and
// Postgres, selected by the DATABASE_URL scheme.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/postcraft/postcraft/backend-go/internal/engine"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Store interface {
	// SaveSnapshot appends a new snapshot version for the canvas.
	SaveSnapshot(ctx context.Context, canvasID string, document json.RawMessage) error
	// LatestSnapshot returns the most recent snapshot document, or ErrNotFound.
	LatestSnapshot(ctx context.Context, canvasID string) (json.RawMessage, error)

	CreateUser(ctx context.Context, u User) error
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)

	PutMedia(ctx context.Context, item engine.MediaItem) error
	ListMedia(ctx context.Context) ([]engine.MediaItem, error)
	DeleteMedia(ctx context.Context, id string) error

	Close() error
}

// Open picks the backend from the URL: postgres:// connects a pool, anything
// else is treated as a sqlite file path.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return OpenPostgres(ctx, databaseURL)
	}
	return OpenSQLite(databaseURL)
}
