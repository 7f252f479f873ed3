package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/postcraft/postcraft/backend-go/internal/engine"
	"github.com/postcraft/postcraft/backend-go/internal/typeid"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	canvas_id TEXT NOT NULL,
	version INTEGER NOT NULL,
	document BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_snapshots_canvas ON snapshots(canvas_id, version);

CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	display_name TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS media (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	url TEXT NOT NULL,
	size INTEGER NOT NULL,
	width INTEGER NOT NULL DEFAULT 0,
	height INTEGER NOT NULL DEFAULT 0,
	favorite INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
`

type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the local database file and applies
// the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) SaveSnapshot(ctx context.Context, canvasID string, document json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, canvas_id, version, document)
		VALUES (?, ?, (SELECT COALESCE(MAX(version), 0) + 1 FROM snapshots WHERE canvas_id = ?), ?)`,
		typeid.NewSnapshotID(), canvasID, canvasID, []byte(document))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLite) LatestSnapshot(ctx context.Context, canvasID string) (json.RawMessage, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT document FROM snapshots WHERE canvas_id = ? ORDER BY version DESC LIMIT 1`,
		canvasID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	return doc, nil
}

func (s *SQLite) CreateUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password, display_name) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.Password, u.DisplayName)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, email, password, display_name, created_at FROM users WHERE email = ?`, email))
}

func (s *SQLite) GetUserByID(ctx context.Context, id string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, email, password, display_name, created_at FROM users WHERE id = ?`, id))
}

func (s *SQLite) scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (s *SQLite) PutMedia(ctx context.Context, item engine.MediaItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO media (id, name, type, url, size, width, height, favorite, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Type, item.URL, item.Size, item.Width, item.Height,
		boolToInt(item.Favorite), item.CreatedAt)
	if err != nil {
		return fmt.Errorf("put media: %w", err)
	}
	return nil
}

func (s *SQLite) ListMedia(ctx context.Context) ([]engine.MediaItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, url, size, width, height, favorite, created_at
		FROM media ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []engine.MediaItem
	for rows.Next() {
		var item engine.MediaItem
		var fav int
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.URL, &item.Size,
			&item.Width, &item.Height, &fav, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		item.Favorite = fav != 0
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLite) DeleteMedia(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
