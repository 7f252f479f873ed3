package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/postcraft/postcraft/backend-go/internal/engine"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotVersioning(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.LatestSnapshot(ctx, "canvas_a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.SaveSnapshot(ctx, "canvas_a", []byte(`{"v":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(ctx, "canvas_a", []byte(`{"v":2}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(ctx, "canvas_b", []byte(`{"other":true}`)); err != nil {
		t.Fatal(err)
	}

	doc, err := s.LatestSnapshot(ctx, "canvas_a")
	if err != nil {
		t.Fatal(err)
	}
	if string(doc) != `{"v":2}` {
		t.Errorf("latest = %s, want the second write", doc)
	}

	doc, err = s.LatestSnapshot(ctx, "canvas_b")
	if err != nil {
		t.Fatal(err)
	}
	if string(doc) != `{"other":true}` {
		t.Errorf("canvas_b latest = %s", doc)
	}
}

func TestUserUniqueEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := User{ID: "user_1", Email: "a@example.com", Password: "hash", DisplayName: "A"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	dup := User{ID: "user_2", Email: "a@example.com", Password: "hash", DisplayName: "B"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "user_1" || got.DisplayName != "A" {
		t.Errorf("user = %+v", got)
	}

	if _, err := s.GetUserByID(ctx, "user_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMediaRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	item := engine.MediaItem{
		ID: "media_1", Name: "pic.png", Type: "image", URL: "/media/pic.png",
		Size: 1234, Width: 640, Height: 480, CreatedAt: 1700000000,
	}
	if err := s.PutMedia(ctx, item); err != nil {
		t.Fatal(err)
	}

	item.Favorite = true
	if err := s.PutMedia(ctx, item); err != nil {
		t.Fatal(err)
	}

	items, err := s.ListMedia(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want upsert not insert", len(items))
	}
	if !items[0].Favorite || items[0].Width != 640 {
		t.Errorf("item = %+v", items[0])
	}

	if err := s.DeleteMedia(ctx, "media_1"); err != nil {
		t.Fatal(err)
	}
	items, _ = s.ListMedia(ctx)
	if len(items) != 0 {
		t.Error("media not deleted")
	}
}
