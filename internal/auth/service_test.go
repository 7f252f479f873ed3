package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/postcraft/postcraft/backend-go/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(st, "test-secret")
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, "ada@example.com", "hunter2hunter2", "Ada")
	if err != nil {
		t.Fatal(err)
	}
	if res.Token == "" || res.User.Email != "ada@example.com" {
		t.Fatalf("result = %+v", res)
	}

	login, err := svc.Login(ctx, "ada@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if login.User.ID != res.User.ID {
		t.Error("login returned a different user")
	}

	userID, err := svc.ValidateToken(login.Token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != res.User.ID {
		t.Errorf("token subject = %q, want %q", userID, res.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", "password123", "First"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, "dup@example.com", "password456", "Second")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "correcthorse", "Ada"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrongpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}

	other := NewService(nil, "different-secret")
	res, err := newTestService(t).Register(context.Background(), "a@b.com", "password123", "A")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.ValidateToken(res.Token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}
