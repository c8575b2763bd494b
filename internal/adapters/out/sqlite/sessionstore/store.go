// Package sessionstore keeps the run cursor and flags of each route in a
// device-local SQLite file so a run survives a process restart.
//
// Each route owns up to five keys:
//
//	reparto_<routeID>             cursor
//	reparto_<routeID>_anchor      id of the stop at the cursor
//	reparto_<routeID>_inicio      run start time (RFC 3339)
//	reparto_<routeID>_iniciado    started flag
//	reparto_<routeID>_completado  day of the last finished run (YYYY-MM-DD)
package sessionstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"paperround/internal/core/domain/model/kernel"
	"paperround/internal/core/ports"
	"paperround/internal/pkg/sqlitemigrate"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	keyPrefix       = "reparto_"
	suffixAnchor    = "_anchor"
	suffixStartedAt = "_inicio"
	suffixStarted   = "_iniciado"
	suffixCompleted = "_completado"
	startedFlag     = "1"
)

type keys struct {
	cursor, anchor, startedAt, started, completed string
}

func keysFor(routeID kernel.UUID) keys {
	base := keyPrefix + routeID.String()
	return keys{
		cursor:    base,
		anchor:    base + suffixAnchor,
		startedAt: base + suffixStartedAt,
		started:   base + suffixStarted,
		completed: base + suffixCompleted,
	}
}

// Store implements ports.SessionStore on SQLite.
type Store struct {
	db *sql.DB
}

var _ ports.SessionStore = (*Store)(nil)

// Open opens (creating when needed) and migrates the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("session store path is required")
	}

	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer keeps cursor updates of a route strictly ordered.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err = sqlitemigrate.Apply(ctx, db, migrations, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the persisted state of a route. A route that never ran yields
// the zero state.
func (s *Store) Load(ctx context.Context, routeID kernel.UUID) (ports.SessionState, error) {
	k := keysFor(routeID)
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM session_kv WHERE key IN (?, ?, ?, ?, ?)`,
		k.cursor, k.anchor, k.startedAt, k.started, k.completed,
	)
	if err != nil {
		return ports.SessionState{}, fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, 5)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return ports.SessionState{}, fmt.Errorf("scan session: %w", err)
		}
		values[key] = value
	}
	if err = rows.Err(); err != nil {
		return ports.SessionState{}, fmt.Errorf("load session: %w", err)
	}

	return decodeState(k, values)
}

func decodeState(k keys, values map[string]string) (ports.SessionState, error) {
	var state ports.SessionState

	if v, ok := values[k.cursor]; ok {
		cursor, err := strconv.Atoi(v)
		if err != nil || cursor < 0 {
			return ports.SessionState{}, fmt.Errorf("corrupt cursor %q", v)
		}
		state.Cursor = &cursor
	}
	if v, ok := values[k.anchor]; ok {
		anchor, err := kernel.UUIDFromString(v)
		if err != nil {
			return ports.SessionState{}, fmt.Errorf("corrupt anchor %q: %w", v, err)
		}
		state.Anchor = &anchor
	}
	if v, ok := values[k.startedAt]; ok {
		startedAt, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return ports.SessionState{}, fmt.Errorf("corrupt start time %q: %w", v, err)
		}
		state.StartedAt = startedAt
	}
	state.Started = values[k.started] == startedFlag
	if v, ok := values[k.completed]; ok {
		day, err := kernel.ParseDate(v)
		if err != nil {
			return ports.SessionState{}, fmt.Errorf("corrupt completed day %q: %w", v, err)
		}
		state.CompletedOn = &day
	}

	return state, nil
}

// SetCursor stores the cursor and its anchor in one transaction. A nil
// anchor removes the stored one.
func (s *Store) SetCursor(ctx context.Context, routeID kernel.UUID, cursor int, anchor *kernel.UUID) error {
	if cursor < 0 {
		return fmt.Errorf("negative cursor %d", cursor)
	}
	k := keysFor(routeID)

	return s.inTx(ctx, "set cursor", func(tx *sql.Tx) error {
		if err := put(ctx, tx, k.cursor, strconv.Itoa(cursor)); err != nil {
			return err
		}
		if anchor == nil {
			return del(ctx, tx, k.anchor)
		}
		return put(ctx, tx, k.anchor, anchor.String())
	})
}

// MarkStarted sets the started flag and start time.
func (s *Store) MarkStarted(ctx context.Context, routeID kernel.UUID, startedAt time.Time) error {
	k := keysFor(routeID)

	return s.inTx(ctx, "mark started", func(tx *sql.Tx) error {
		if err := put(ctx, tx, k.started, startedFlag); err != nil {
			return err
		}
		return put(ctx, tx, k.startedAt, startedAt.UTC().Format(time.RFC3339Nano))
	})
}

// MarkCompleted records the day the route last finished a run.
func (s *Store) MarkCompleted(ctx context.Context, routeID kernel.UUID, date kernel.Date) error {
	if err := date.Validate(); err != nil {
		return err
	}
	return s.inTx(ctx, "mark completed", func(tx *sql.Tx) error {
		return put(ctx, tx, keysFor(routeID).completed, date.String())
	})
}

// Clear removes cursor, anchor, start time and started flag. The completed
// flag is kept.
func (s *Store) Clear(ctx context.Context, routeID kernel.UUID) error {
	k := keysFor(routeID)

	return s.inTx(ctx, "clear session", func(tx *sql.Tx) error {
		for _, key := range []string{k.cursor, k.anchor, k.startedAt, k.started} {
			if err := del(ctx, tx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// ResetCompleted drops completed flags for days before before.
func (s *Store) ResetCompleted(ctx context.Context, before kernel.Date) (int, error) {
	if err := before.Validate(); err != nil {
		return 0, err
	}

	// ISO dates compare correctly as text.
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM session_kv WHERE key LIKE ? ESCAPE '\' AND value < ?`,
		`reparto\_%\_completado`, before.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("reset completed flags: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset completed flags: %w", err)
	}
	return int(n), nil
}

func (s *Store) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err = fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	return nil
}

func put(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session_kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().UnixMilli(),
	)
	return err
}

func del(ctx context.Context, tx *sql.Tx, key string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM session_kv WHERE key = ?`, key)
	return err
}
