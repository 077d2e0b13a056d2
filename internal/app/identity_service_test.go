package app_test

import (
	"context"
	"errors"
	"testing"

	"habitboard/internal/app"
	"habitboard/internal/domain"
)

type mockUserRepo struct {
	upsertFn func(ctx context.Context, u domain.User) error
	getFn    func(ctx context.Context, id string) (*domain.User, error)
}

func (m *mockUserRepo) UpsertUser(ctx context.Context, u domain.User) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func TestSyncUser(t *testing.T) {
	var got domain.User
	repo := &mockUserRepo{
		upsertFn: func(_ context.Context, u domain.User) error {
			got = u
			return nil
		},
	}
	svc := app.NewIdentityService(repo)
	err := svc.SyncUser(context.Background(), domain.User{
		ID:        "user_abc",
		Email:     "a@example.com",
		Username:  "abc",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "user_abc" || got.Email != "a@example.com" {
		t.Fatalf("unexpected upserted user: %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be stamped")
	}
}

func TestSyncUser_MissingID(t *testing.T) {
	called := false
	repo := &mockUserRepo{
		upsertFn: func(_ context.Context, _ domain.User) error {
			called = true
			return nil
		},
	}
	svc := app.NewIdentityService(repo)
	err := svc.SyncUser(context.Background(), domain.User{Email: "a@example.com"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if called {
		t.Fatal("no mutation may happen for an event without a user id")
	}
}

func TestSyncUser_WriteError(t *testing.T) {
	repo := &mockUserRepo{
		upsertFn: func(_ context.Context, _ domain.User) error {
			return errors.New("insert failed")
		},
	}
	svc := app.NewIdentityService(repo)
	err := svc.SyncUser(context.Background(), domain.User{ID: "user_abc"})
	if !errors.Is(err, domain.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}
