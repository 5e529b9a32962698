package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/campuskit/presence/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func testSession() *models.Session {
	return &models.Session{
		AccessToken:  "A1",
		RefreshToken: "R1",
		User:         &models.User{ID: 7, Name: "Alice", Email: "a@u.edu", IsPrivileged: false},
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testSession()))

	require.Equal(t, "A1", s.AccessToken(ctx))
	require.Equal(t, "R1", s.RefreshToken(ctx))

	u := s.User(ctx)
	require.NotNil(t, u)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "a@u.edu", u.Email)
}

func TestLoad_EmptyStoreYieldsZeroValues(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.Equal(t, "", s.AccessToken(ctx))
	require.Equal(t, "", s.RefreshToken(ctx))
	require.Nil(t, s.User(ctx))
}

func TestSave_OverwritesPreviousSession(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testSession()))
	require.NoError(t, s.Save(ctx, &models.Session{
		AccessToken:  "A9",
		RefreshToken: "R9",
		User:         &models.User{ID: 8, Email: "b@u.edu"},
	}))

	require.Equal(t, "A9", s.AccessToken(ctx))
	require.Equal(t, "R9", s.RefreshToken(ctx))
	require.Equal(t, "b@u.edu", s.User(ctx).Email)
}

func TestUpdateAccessToken_LeavesRefreshTokenAndUserAlone(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testSession()))
	require.NoError(t, s.UpdateAccessToken(ctx, "A2"))

	require.Equal(t, "A2", s.AccessToken(ctx))
	require.Equal(t, "R1", s.RefreshToken(ctx))
	require.NotNil(t, s.User(ctx))
}

func TestClear_RemovesAllFieldsTogether(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testSession()))
	require.NoError(t, s.Clear(ctx))

	require.Equal(t, "", s.AccessToken(ctx))
	require.Equal(t, "", s.RefreshToken(ctx))
	require.Nil(t, s.User(ctx))
}

func TestUser_CorruptRecordReadsAsAbsent(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO session(key, value) VALUES ('currentUser', '{broken')`)
	require.NoError(t, err)

	require.Nil(t, s.User(ctx))
}

func TestLoad_ClosedDBReadsAsAbsent(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	require.Equal(t, "", s.AccessToken(ctx))
	require.Nil(t, s.User(ctx))
}

func TestInitDatabase_AppliesMigrations(t *testing.T) {
	ctx := context.Background()

	db, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewSQLiteStore(db)
	require.NoError(t, s.Save(ctx, testSession()))
	require.Equal(t, "A1", s.AccessToken(ctx))
}
