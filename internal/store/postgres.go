package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/postcraft/postcraft/backend-go/internal/engine"
	"github.com/postcraft/postcraft/backend-go/internal/typeid"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	canvas_id TEXT NOT NULL,
	version INTEGER NOT NULL,
	document JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_snapshots_canvas ON snapshots(canvas_id, version);

CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	display_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS media (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	url TEXT NOT NULL,
	size BIGINT NOT NULL,
	width INTEGER NOT NULL DEFAULT 0,
	height INTEGER NOT NULL DEFAULT 0,
	favorite BOOLEAN NOT NULL DEFAULT false,
	created_at BIGINT NOT NULL
);
`

type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool and applies the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) SaveSnapshot(ctx context.Context, canvasID string, document json.RawMessage) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO snapshots (id, canvas_id, version, document)
		VALUES ($1, $2, (SELECT COALESCE(MAX(version), 0) + 1 FROM snapshots WHERE canvas_id = $2), $3)`,
		typeid.NewSnapshotID(), canvasID, document)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (p *Postgres) LatestSnapshot(ctx context.Context, canvasID string) (json.RawMessage, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx, `
		SELECT document FROM snapshots WHERE canvas_id = $1 ORDER BY version DESC LIMIT 1`,
		canvasID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	return doc, nil
}

func (p *Postgres) CreateUser(ctx context.Context, u User) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO users (id, email, password, display_name) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.Password, u.DisplayName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return p.scanUser(p.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at FROM users WHERE email = $1`, email))
}

func (p *Postgres) GetUserByID(ctx context.Context, id string) (User, error) {
	return p.scanUser(p.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at FROM users WHERE id = $1`, id))
}

func (p *Postgres) scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (p *Postgres) PutMedia(ctx context.Context, item engine.MediaItem) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO media (id, name, type, url, size, width, height, favorite, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET favorite = EXCLUDED.favorite, name = EXCLUDED.name`,
		item.ID, item.Name, item.Type, item.URL, item.Size, item.Width, item.Height,
		item.Favorite, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("put media: %w", err)
	}
	return nil
}

func (p *Postgres) ListMedia(ctx context.Context) ([]engine.MediaItem, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, type, url, size, width, height, favorite, created_at
		FROM media ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []engine.MediaItem
	for rows.Next() {
		var item engine.MediaItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.URL, &item.Size,
			&item.Width, &item.Height, &item.Favorite, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (p *Postgres) DeleteMedia(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	return err
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
