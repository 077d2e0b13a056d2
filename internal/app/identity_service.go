package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"habitboard/internal/domain"
)

// IdentityService maintains the one-way mirror of users owned by the
// external auth provider. It is invoked only after the transport layer has
// verified the event signature.
type IdentityService struct {
	users domain.UserRepository
}

// NewIdentityService creates an IdentityService backed by the given repository.
func NewIdentityService(users domain.UserRepository) *IdentityService {
	return &IdentityService{users: users}
}

// SyncUser upserts the identity fields keyed by the provider's user id.
// Repeated identical events converge on the same single row.
func (s *IdentityService) SyncUser(ctx context.Context, u domain.User) error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("%w: missing user id", domain.ErrValidation)
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.UpsertUser(ctx, u); err != nil {
		return fmt.Errorf("%w: sync user: %v", domain.ErrWrite, err)
	}
	return nil
}
