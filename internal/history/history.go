// Package history provides SQLite-based persistence for chat sessions and
// their message logs. The database is opened per operation and the schema is
// created on demand, so the first call against a fresh path just works.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"

	"github.com/sadinipathirana/Simple-AI-Chat-Application/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS chat_sessions (
    session_id TEXT PRIMARY KEY,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS chat_messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    timestamp DATETIME NOT NULL,
    FOREIGN KEY (session_id) REFERENCES chat_sessions(session_id)
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_session_id ON chat_messages(session_id);
`

// Store owns all persisted conversation state.
type Store struct {
	path string
	log  *slog.Logger
}

// NewStore creates a store backed by the SQLite database at path. The file is
// created lazily on first use.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		log:  logger.With("component", "history"),
	}
}

// open opens a connection and ensures the schema exists. Callers must close
// the returned handle; connections do not outlive a single operation.
func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+s.path+"?_busy_timeout=10000&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return db, nil
}

// CreateSession inserts a new session with a fresh random identifier and
// returns the identifier.
func (s *Store) CreateSession(ctx context.Context) (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	sessionID := uuid.NewString()
	now := time.Now().UTC()
	if _, err := db.ExecContext(ctx,
		`INSERT INTO chat_sessions (session_id, created_at, updated_at) VALUES (?, ?, ?)`,
		sessionID, now, now,
	); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sessionID, nil
}

// SaveMessage appends a message to a session, creating the session if it does
// not exist yet and refreshing its updated_at otherwise. Two identical calls
// store two distinct messages; there is no deduplication.
func (s *Store) SaveMessage(ctx context.Context, sessionID, role, content string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chat_sessions (session_id, created_at, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET updated_at = excluded.updated_at`,
		sessionID, now, now,
	); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chat_messages (session_id, role, content, timestamp) VALUES (?, ?, ?, ?)`,
		sessionID, role, content, now,
	); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// GetHistory returns all messages of a session in chronological order. An
// unknown session yields an empty slice, not an error.
func (s *Store) GetHistory(ctx context.Context, sessionID string) ([]StoredMessage, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT role, content, timestamp FROM chat_messages
		 WHERE session_id = ? ORDER BY timestamp ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	messages := make([]StoredMessage, 0)
	for rows.Next() {
		var m StoredMessage
		if err := rows.Scan(&m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return messages, nil
}

// GetAllSessions returns every session, most recently active first.
func (s *Store) GetAllSessions(ctx context.Context) ([]Session, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT session_id, created_at, updated_at FROM chat_sessions
		 ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.SessionID, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return sessions, nil
}

// DeleteSession removes all messages of a session and then the session record
// itself. Storage errors are logged and reported as false rather than
// returned; deleting a session that does not exist succeeds as a no-op.
// Note the asymmetry with SaveMessage, which propagates storage errors.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) bool {
	db, err := s.open()
	if err != nil {
		s.log.Error("failed to open history db for delete", "session_id", sessionID, "error", err)
		return false
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		s.log.Error("failed to begin delete transaction", "session_id", sessionID, "error", err)
		return false
	}
	defer tx.Rollback()

	// Messages first, session second: the messages table references the session.
	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID); err != nil {
		s.log.Error("failed to delete session messages", "session_id", sessionID, "error", err)
		return false
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE session_id = ?`, sessionID); err != nil {
		s.log.Error("failed to delete session", "session_id", sessionID, "error", err)
		return false
	}
	if err := tx.Commit(); err != nil {
		s.log.Error("failed to commit session delete", "session_id", sessionID, "error", err)
		return false
	}
	return true
}
