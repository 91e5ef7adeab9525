package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"CotLens/internal/domain/models"
	domrepo "CotLens/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             TEXT PRIMARY KEY,
	email          TEXT NOT NULL UNIQUE,
	password_hash  TEXT NOT NULL,
	phone          TEXT NOT NULL,
	phone_verified INTEGER NOT NULL DEFAULT 0,
	created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS verification_codes (
	user_id    TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	code       TEXT NOT NULL,
	expires_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS saved_views (
	user_id        TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	symbol         TEXT NOT NULL,
	report_type    TEXT NOT NULL,
	category       TEXT NOT NULL,
	lookback_weeks INTEGER NOT NULL
);
`

// SQLiteStore implements UserStore and ViewStore on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var (
	_ domrepo.UserStore = (*SQLiteStore)(nil)
	_ domrepo.ViewStore = (*SQLiteStore)(nil)
)

// NewSQLiteStore opens (or creates) the database and applies the schema.
// WAL mode keeps readers unblocked during writes.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Ping checks database connectivity for readiness probes.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- UserStore ---

func (s *SQLiteStore) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, phone, phone_verified, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Phone, boolToInt(u.PhoneVerified),
		u.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, phone, phone_verified, created_at
		 FROM users WHERE email = ?`, email))
}

func (s *SQLiteStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, phone, phone_verified, created_at
		 FROM users WHERE id = ?`, id))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var verified int
	var createdAt string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Phone, &verified, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.PhoneVerified = verified != 0
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		u.CreatedAt = t
	}
	return &u, nil
}

func (s *SQLiteStore) MarkPhoneVerified(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET phone_verified = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("mark verified: user %s not found", id)
	}
	return nil
}

func (s *SQLiteStore) SaveCode(ctx context.Context, c *models.VerificationCode) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO verification_codes (user_id, code, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET code = excluded.code, expires_at = excluded.expires_at`,
		c.UserID, c.Code, c.ExpiresAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CodeByUser(ctx context.Context, userID string) (*models.VerificationCode, error) {
	var c models.VerificationCode
	var expiresAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, code, expires_at FROM verification_codes WHERE user_id = ?`,
		userID).Scan(&c.UserID, &c.Code, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan code: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, expiresAt); err == nil {
		c.ExpiresAt = t
	}
	return &c, nil
}

func (s *SQLiteStore) DeleteCode(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM verification_codes WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete code: %w", err)
	}
	return nil
}

// --- ViewStore ---

func (s *SQLiteStore) View(ctx context.Context, userID string) (*models.ViewState, error) {
	var v models.ViewState
	err := s.db.QueryRowContext(ctx,
		`SELECT symbol, report_type, category, lookback_weeks
		 FROM saved_views WHERE user_id = ?`, userID).
		Scan(&v.Symbol, &v.ReportType, &v.Category, &v.LookbackWeeks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan view: %w", err)
	}
	return &v, nil
}

func (s *SQLiteStore) SaveView(ctx context.Context, userID string, v *models.ViewState) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_views (user_id, symbol, report_type, category, lookback_weeks)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			symbol = excluded.symbol,
			report_type = excluded.report_type,
			category = excluded.category,
			lookback_weeks = excluded.lookback_weeks`,
		userID, v.Symbol, v.ReportType, v.Category, v.LookbackWeeks)
	if err != nil {
		return fmt.Errorf("save view: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
