package domain

import (
	"context"
	"time"
)

// User mirrors an identity held by the external auth provider. The ID is
// the provider's opaque identifier and the row is written only by inbound
// identity events, never by the habit/progress paths.
type User struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRepository defines the port for the one-way identity mirror.
type UserRepository interface {
	UpsertUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (*User, error)
}
