package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userconsole/internal/dbx"
	"github.com/dmitrijs2005/userconsole/internal/filex"
	"github.com/dmitrijs2005/userconsole/internal/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps sessions in a local SQLite file. Rows untouched for
// longer than ttl are treated as absent and purged on open.
type SQLiteStore struct {
	db        *sql.DB
	sessionID string
	ttl       time.Duration
	now       func() time.Time
}

// RunMigrations applies the embedded schema. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// OpenSQLite opens (creating if needed) the database at dsn, migrates it and
// drops expired rows of every session.
func OpenSQLite(ctx context.Context, dsn, sessionID string, ttl time.Duration) (*SQLiteStore, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("prepare sqlite %s: %w", dsn, err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	// one writer; avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	s := NewSQLiteStore(db, sessionID, ttl)
	if err := s.PurgeExpired(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB, sessionID string, ttl time.Duration) *SQLiteStore {
	return &SQLiteStore{db: db, sessionID: sessionID, ttl: ttl, now: time.Now}
}

func (s *SQLiteStore) cutoff() int64 {
	return s.now().Add(-s.ttl).Unix()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_data WHERE session_id = ? AND key = ? AND updated_at >= ?`,
		s.sessionID, key, s.cutoff()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.set(ctx, s.db, key, value); err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO session_data (session_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.sessionID, key, value, s.now().Unix())
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := s.delete(ctx, s.db, key); err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) delete(ctx context.Context, q dbx.DBTX, key string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM session_data WHERE session_id = ? AND key = ?`, s.sessionID, key)
	return err
}

func (s *SQLiteStore) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM session_data WHERE session_id = ? AND updated_at >= ?`,
		s.sessionID, s.cutoff())
	if err != nil {
		return nil, fmt.Errorf("failed to list session: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_data WHERE session_id = ?`, s.sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Apply(ctx context.Context, changes ...Change) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, c := range changes {
			var err error
			if c.Delete {
				err = s.delete(ctx, tx, c.Key)
			} else {
				err = s.set(ctx, tx, c.Key, c.Value)
			}
			if err != nil {
				return fmt.Errorf("session[%s]: %w", c.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to apply session changes: %w", err)
	}
	return nil
}

// PurgeExpired removes rows of any session older than the ttl.
func (s *SQLiteStore) PurgeExpired(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_data WHERE updated_at < ?`, s.cutoff())
	if err != nil {
		return fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
