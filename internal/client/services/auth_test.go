package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campuskit/presence/internal/client/models"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	access    string
	refresh   string
	user      *models.User
	saveErr   error
	saveCalls int
}

func (m *memStore) Save(ctx context.Context, s *models.Session) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.access, m.refresh, m.user = s.AccessToken, s.RefreshToken, s.User
	return nil
}

func (m *memStore) UpdateAccessToken(ctx context.Context, token string) error {
	m.access = token
	return nil
}

func (m *memStore) AccessToken(ctx context.Context) string  { return m.access }
func (m *memStore) RefreshToken(ctx context.Context) string { return m.refresh }
func (m *memStore) User(ctx context.Context) *models.User   { return m.user }

func (m *memStore) Clear(ctx context.Context) error {
	m.access, m.refresh, m.user = "", "", nil
	return nil
}

type loginAPI struct {
	fakeAPI
	session  *models.Session
	loginErr error
	email    string
	password string
}

func (f *loginAPI) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	f.email, f.password = email, string(password)
	return f.session, f.loginErr
}

func TestLogin_PersistsTokensAndUserTogether(t *testing.T) {
	api := &loginAPI{session: &models.Session{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         &models.User{ID: 7, Email: "a@u.edu"},
	}}
	store := &memStore{}
	auth := NewAuthService(api, store)

	u, err := auth.Login(context.Background(), "a@u.edu", []byte("secret"))
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)

	require.Equal(t, "a@u.edu", api.email)
	require.Equal(t, "secret", api.password)

	require.Equal(t, 1, store.saveCalls)
	require.Equal(t, "A1", store.access)
	require.Equal(t, "R1", store.refresh)
	require.Equal(t, "a@u.edu", store.user.Email)
}

func TestLogin_RejectedCredentialsLeaveStoreUntouched(t *testing.T) {
	api := &loginAPI{loginErr: errors.New("invalid credentials")}
	store := &memStore{access: "old", refresh: "old"}
	auth := NewAuthService(api, store)

	_, err := auth.Login(context.Background(), "a@u.edu", []byte("wrong"))
	require.Error(t, err)
	require.Zero(t, store.saveCalls)
	require.Equal(t, "old", store.access)
}

func TestLogin_SaveFailureSurfaces(t *testing.T) {
	api := &loginAPI{session: &models.Session{AccessToken: "A1", RefreshToken: "R1"}}
	store := &memStore{saveErr: errors.New("disk full")}
	auth := NewAuthService(api, store)

	_, err := auth.Login(context.Background(), "a@u.edu", []byte("secret"))
	require.ErrorContains(t, err, "session saving error")
}

func TestLogout_ClearsTheWholeSession(t *testing.T) {
	store := &memStore{access: "A1", refresh: "R1", user: &models.User{ID: 7}}
	auth := NewAuthService(&loginAPI{}, store)

	require.NoError(t, auth.Logout(context.Background()))
	require.Empty(t, store.access)
	require.Empty(t, store.refresh)
	require.Nil(t, store.user)
}

func TestCurrentUser_ReadsTheLocalSnapshot(t *testing.T) {
	store := &memStore{user: &models.User{ID: 7, Name: "Alice"}}
	auth := NewAuthService(&loginAPI{}, store)

	u := auth.CurrentUser(context.Background())
	require.NotNil(t, u)
	require.Equal(t, "Alice", u.Name)

	require.Nil(t, NewAuthService(&loginAPI{}, &memStore{}).CurrentUser(context.Background()))
}
