// This file implements the versioned spec document store. Each
// (project, file_type) key has exactly one current row in spec_files and
// an append-only trail in spec_versions holding versions 1..N-1. A write
// archives the current content and advances the version inside a single
// transaction; the version-guarded UPDATE plus the UNIQUE indexes make
// concurrent writers lose with ErrConflict instead of ever producing a
// gap or a duplicate version number.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// GetCurrentSpec returns the current version of the document for the
// (project, fileType) key, if the principal owns the project.
func (s *Store) GetCurrentSpec(projectID, fileType, principal string) (*types.SpecFile, error) {
	if projectID == "" || fileType == "" {
		return nil, types.ErrInvalidID
	}
	if err := s.requireOwner(projectID, principal); err != nil {
		return nil, err
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT spec_file_id, project_id, file_type, content, version, created_at, created_by FROM spec_files WHERE project_id = ? AND file_type = ?",
		projectID, fileType,
	)
	sf, err := hydrateSpecFile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting spec %s/%s: %w", projectID, fileType, mapStoreError(err))
	}
	return sf, nil
}

// ListSpecHistory returns the archived versions for the key, ascending
// by version number. The set is exactly {1 .. currentVersion-1}; the
// current content is retrieved with GetCurrentSpec.
func (s *Store) ListSpecHistory(projectID, fileType, principal string) ([]*types.SpecVersion, error) {
	if projectID == "" || fileType == "" {
		return nil, types.ErrInvalidID
	}
	if err := s.requireOwner(projectID, principal); err != nil {
		return nil, err
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var lineageID string
	err = db.QueryRow(
		"SELECT spec_file_id FROM spec_files WHERE project_id = ? AND file_type = ?",
		projectID, fileType,
	).Scan(&lineageID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("resolving spec lineage: %w", mapStoreError(err))
	}

	rows, err := db.Query(
		"SELECT version_id, spec_file_id, version, content, changes_summary, created_at, created_by FROM spec_versions WHERE spec_file_id = ? ORDER BY version ASC",
		lineageID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying spec history: %w", mapStoreError(err))
	}
	defer rows.Close()

	entries := []*types.SpecVersion{}
	for rows.Next() {
		var v types.SpecVersion
		var createdAt string
		if err := rows.Scan(&v.VersionID, &v.SpecFileID, &v.Version, &v.Content, &v.ChangesSummary, &createdAt, &v.CreatedBy); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		v.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing history created_at: %w", err)
		}
		entries = append(entries, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history entries: %w", mapStoreError(err))
	}
	return entries, nil
}

// WriteSpec stores new content for the (project, fileType) key. The
// first write to a key creates version 1 with no history entry; every
// later write archives the current content at its version number and
// advances the current row by exactly one. Content-equal writes still
// bump the version. A concurrent writer that advances the version first
// makes this call fail with ErrConflict; the caller re-reads and retries.
func (s *Store) WriteSpec(projectID, fileType, content string, summary *string, principal string) (*types.SpecFile, error) {
	if projectID == "" || fileType == "" {
		return nil, types.ErrInvalidID
	}
	if content == "" {
		return nil, types.ErrInvalidContent
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", mapStoreError(err))
	}
	defer tx.Rollback()

	sf, err := writeSpecTx(tx, projectID, fileType, content, summary, principal)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing spec write: %w", mapStoreError(err))
	}
	return sf, nil
}

// RollbackSpec re-applies the content of an archived version through the
// normal write path: the current content is archived first, then the
// version advances with the rolled-back content. versionID must belong
// to the (project, fileType) lineage.
func (s *Store) RollbackSpec(projectID, fileType, versionID, principal string) (*types.SpecFile, error) {
	if projectID == "" || fileType == "" || versionID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", mapStoreError(err))
	}
	defer tx.Rollback()

	if err := requireOwnerTx(tx, projectID, principal); err != nil {
		return nil, err
	}

	var lineageID, content string
	var version int64
	err = tx.QueryRow(
		`SELECT v.spec_file_id, v.version, v.content
		 FROM spec_versions v
		 JOIN spec_files f ON f.spec_file_id = v.spec_file_id
		 WHERE v.version_id = ? AND f.project_id = ? AND f.file_type = ?`,
		versionID, projectID, fileType,
	).Scan(&lineageID, &version, &content)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("resolving rollback target: %w", mapStoreError(err))
	}

	summary := fmt.Sprintf("Rollback to version %d", version)
	sf, err := writeSpecTx(tx, projectID, fileType, content, &summary, principal)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing rollback: %w", mapStoreError(err))
	}
	return sf, nil
}

// writeSpecTx performs the archive-then-advance sequence inside tx.
// The caller owns commit and rollback.
func writeSpecTx(tx *sql.Tx, projectID, fileType, content string, summary *string, principal string) (*types.SpecFile, error) {
	if err := requireOwnerTx(tx, projectID, principal); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var cur types.SpecFile
	var createdAt string
	err := tx.QueryRow(
		"SELECT spec_file_id, content, version, created_at, created_by FROM spec_files WHERE project_id = ? AND file_type = ?",
		projectID, fileType,
	).Scan(&cur.SpecFileID, &cur.Content, &cur.Version, &createdAt, &cur.CreatedBy)

	if err == sql.ErrNoRows {
		// First write to this key: version 1, no history entry.
		sf := &types.SpecFile{
			SpecFileID: generateUUID(),
			ProjectID:  projectID,
			FileType:   fileType,
			Content:    content,
			Version:    1,
			CreatedAt:  now,
			CreatedBy:  principal,
		}
		_, err = tx.Exec(
			"INSERT INTO spec_files (spec_file_id, project_id, file_type, content, version, created_at, created_by) VALUES (?, ?, ?, ?, 1, ?, ?)",
			sf.SpecFileID, projectID, fileType, content, now.Format(time.RFC3339), principal,
		)
		if err != nil {
			// A racing first write trips the lineage UNIQUE index.
			return nil, fmt.Errorf("creating spec lineage: %w", mapStoreError(err))
		}
		if err := touchProjectTx(tx, projectID, now); err != nil {
			return nil, err
		}
		return sf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading current spec: %w", mapStoreError(err))
	}

	// Archive the superseded content at its version number.
	_, err = tx.Exec(
		"INSERT INTO spec_versions (version_id, spec_file_id, version, content, changes_summary, created_at, created_by) VALUES (?, ?, ?, ?, ?, ?, ?)",
		generateUUID(), cur.SpecFileID, cur.Version, cur.Content, summary, now.Format(time.RFC3339), principal,
	)
	if err != nil {
		return nil, fmt.Errorf("archiving spec version %d: %w", cur.Version, mapStoreError(err))
	}

	// Advance the current row, guarded by the version we read. Zero rows
	// means another writer got there first.
	res, err := tx.Exec(
		"UPDATE spec_files SET content = ?, version = ? WHERE spec_file_id = ? AND version = ?",
		content, cur.Version+1, cur.SpecFileID, cur.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("advancing spec version: %w", mapStoreError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking spec update: %w", err)
	}
	if affected == 0 {
		return nil, types.ErrConflict
	}

	if err := touchProjectTx(tx, projectID, now); err != nil {
		return nil, err
	}

	lineageCreated, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing spec created_at: %w", err)
	}
	return &types.SpecFile{
		SpecFileID: cur.SpecFileID,
		ProjectID:  projectID,
		FileType:   fileType,
		Content:    content,
		Version:    cur.Version + 1,
		CreatedAt:  lineageCreated,
		CreatedBy:  cur.CreatedBy,
	}, nil
}

// hydrateSpecFile converts a single row into a *types.SpecFile.
func hydrateSpecFile(row *sql.Row) (*types.SpecFile, error) {
	var sf types.SpecFile
	var createdAt string
	if err := row.Scan(&sf.SpecFileID, &sf.ProjectID, &sf.FileType, &sf.Content, &sf.Version, &createdAt, &sf.CreatedBy); err != nil {
		return nil, err
	}
	var err error
	sf.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &sf, nil
}
