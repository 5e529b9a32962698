package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/campuskit/presence/internal/client/migrations"
	"github.com/campuskit/presence/internal/client/models"
	"github.com/campuskit/presence/internal/dbx"
	"github.com/pressly/goose/v3"
)

const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyCurrentUser  = "currentUser"
)

// SQLiteStore keeps the session in a local sqlite key-value table so it
// survives process restarts. Writes go through a transaction so the token
// pair never ends up half-updated.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InitDatabase opens the local sqlite database and applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sess *models.Session) error {
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyAccessToken, []byte(sess.AccessToken)); err != nil {
			return err
		}
		if err := set(ctx, tx, keyRefreshToken, []byte(sess.RefreshToken)); err != nil {
			return err
		}
		return set(ctx, tx, keyCurrentUser, user)
	})
}

func (s *SQLiteStore) UpdateAccessToken(ctx context.Context, token string) error {
	return set(ctx, s.db, keyAccessToken, []byte(token))
}

func (s *SQLiteStore) AccessToken(ctx context.Context) string {
	return string(s.get(ctx, keyAccessToken))
}

func (s *SQLiteStore) RefreshToken(ctx context.Context) string {
	return string(s.get(ctx, keyRefreshToken))
}

func (s *SQLiteStore) User(ctx context.Context) *models.User {
	raw := s.get(ctx, keyCurrentUser)
	if len(raw) == 0 {
		return nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	return &u
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// get is best-effort: absent rows and driver errors both read as "not there".
func (s *SQLiteStore) get(ctx context.Context, key string) []byte {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil
	}
	return value
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}
