// Package services contains the application services of the Presence client:
// authentication and the attendance workflow.
package services

import (
	"context"
	"fmt"

	"github.com/campuskit/presence/internal/client/api"
	"github.com/campuskit/presence/internal/client/models"
	"github.com/campuskit/presence/internal/client/session"
)

// AuthService defines the authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session.
//   - Logout: clear the persisted session.
//   - Me: fetch the current profile from the server.
//   - CurrentUser: read the locally cached user snapshot, if any.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	CurrentUser(ctx context.Context) *models.User
}

type authService struct {
	api   api.API
	store session.Store
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(a api.API, store session.Store) AuthService {
	return &authService{api: a, store: store}
}

// Login exchanges credentials for a token pair and persists tokens and user
// together, so a dangling access token can never sit next to a stale refresh
// token.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	sess, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return sess.User, nil
}

// Logout wipes the persisted session. It is purely local; the server keeps
// no client-visible session state.
func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	u, err := a.api.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile error: %w", err)
	}
	return u, nil
}

func (a *authService) CurrentUser(ctx context.Context) *models.User {
	return a.store.User(ctx)
}
