// Package sqlite implements the SQLite storage backend for initflow:
// projects, versioned spec documents with history, tasks, chat messages,
// and memory items, all scoped to an owning principal.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "initflow.db"

// Store provides durable, ownership-scoped persistence over SQLite.
// Every project-scoped operation takes the requesting principal and
// verifies ownership before touching data; there is no unscoped path.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewStore creates a new SQLite store instance.
// The store is not attached; call Attach with a Config to initialize.
func NewStore() *Store {
	return &Store{}
}

// Attach opens the database under config.DataDir, creating the directory
// and schema if needed. Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// One writer at a time; serialize statements on a single connection
	// so the busy handler and version guards see a consistent view.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("applying %s: %w", pragma, err)
		}
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating indexes: %w", err)
		}
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. After Detach all operations return
// ErrStoreClosed. Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil // idempotent
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}

	s.attached = false
	return nil
}

// conn returns the live database handle or ErrStoreClosed.
func (s *Store) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached || s.db == nil {
		return nil, types.ErrStoreClosed
	}
	return s.db, nil
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
