// Package session persists the authenticated session: the access/refresh
// token pair and the cached user snapshot. It is a pure storage abstraction;
// nothing here talks to the network or validates token contents.
package session

import (
	"context"

	"github.com/campuskit/presence/internal/client/models"
)

// Store is the session persistence contract.
//
// Contract:
//   - Save persists both tokens and the user snapshot atomically from the
//     caller's perspective: either all three update or none do.
//   - UpdateAccessToken replaces the access token alone; the renewal path
//     uses it so the refresh token is left untouched.
//   - The read methods are best-effort: a corrupted or absent record yields
//     the zero value, never an error.
//   - Clear removes all persisted fields together.
type Store interface {
	Save(ctx context.Context, s *models.Session) error
	UpdateAccessToken(ctx context.Context, token string) error
	AccessToken(ctx context.Context) string
	RefreshToken(ctx context.Context) string
	User(ctx context.Context) *models.User
	Clear(ctx context.Context) error
}
