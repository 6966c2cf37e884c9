// This file implements project persistence. A project is the tenancy
// boundary: every dependent row carries its project_id, and ownership is
// checked against projects.owner_id inside the same transaction as the
// data access, so no call path can skip the filter.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// CreateProject inserts a project owned by the principal and seeds the
// three standard spec files at version 1 in the same transaction. Status
// starts as draft; the tier is copied from the owning account.
func (s *Store) CreateProject(principal, name string, description *string) (*types.Project, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	owner, err := s.GetUser(principal)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &types.Project{
		ProjectID:   generateUUID(),
		OwnerID:     owner.UserID,
		Name:        name,
		Description: description,
		Status:      types.ProjectStatusDraft,
		Tier:        owner.Tier,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", mapStoreError(err))
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO projects (project_id, owner_id, name, description, status, tier, sandbox_ref, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ProjectID, p.OwnerID, p.Name, p.Description, p.Status, p.Tier, nil,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", mapStoreError(err))
	}

	// Seed the standard spec files at version 1, no history.
	for _, fileType := range types.StandardSpecTypes {
		_, err = tx.Exec(
			"INSERT INTO spec_files (spec_file_id, project_id, file_type, content, version, created_at, created_by) VALUES (?, ?, ?, ?, 1, ?, ?)",
			generateUUID(), p.ProjectID, fileType, specTemplates[fileType],
			now.Format(time.RFC3339), owner.UserID,
		)
		if err != nil {
			return nil, fmt.Errorf("seeding %s spec: %w", fileType, mapStoreError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing project: %w", mapStoreError(err))
	}
	return p, nil
}

// GetProject retrieves a project if the principal owns it. A project
// owned by someone else returns ErrForbidden, an unknown id ErrNotFound.
func (s *Store) GetProject(id, principal string) (*types.Project, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT project_id, owner_id, name, description, status, tier, sandbox_ref, created_at, updated_at FROM projects WHERE project_id = ?",
		id,
	)
	p, err := hydrateProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting project %s: %w", id, mapStoreError(err))
	}
	if p.OwnerID != principal {
		return nil, types.ErrForbidden
	}
	return p, nil
}

// ListProjects returns all projects owned by the principal, most
// recently updated first. Returns an empty slice, not nil.
func (s *Store) ListProjects(principal string) ([]*types.Project, error) {
	if principal == "" {
		return nil, types.ErrInvalidID
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT project_id, owner_id, name, description, status, tier, sandbox_ref, created_at, updated_at FROM projects WHERE owner_id = ? ORDER BY updated_at DESC",
		principal,
	)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", mapStoreError(err))
	}
	defer rows.Close()

	results := []*types.Project{}
	for rows.Next() {
		p, err := hydrateProjectFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating project: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", mapStoreError(err))
	}
	return results, nil
}

// UpdateProject applies a partial update and refreshes updated_at.
// An empty update returns the project unchanged.
func (s *Store) UpdateProject(id, principal string, update types.ProjectUpdate) (*types.Project, error) {
	p, err := s.GetProject(id, principal)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return p, nil
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, types.ErrInvalidName
		}
		p.Name = *update.Name
	}
	if update.Description != nil {
		p.Description = update.Description
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.SandboxRef != nil {
		p.SandboxRef = update.SandboxRef
	}
	p.UpdatedAt = time.Now().UTC()

	_, err = db.Exec(
		"UPDATE projects SET name = ?, description = ?, status = ?, sandbox_ref = ?, updated_at = ? WHERE project_id = ?",
		p.Name, p.Description, p.Status, p.SandboxRef, p.UpdatedAt.Format(time.RFC3339), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating project %s: %w", id, mapStoreError(err))
	}
	return p, nil
}

// DeleteProject removes a project and all of its spec files, history
// entries, tasks, chat messages, and memory items in one transaction.
func (s *Store) DeleteProject(id, principal string) error {
	if _, err := s.GetProject(id, principal); err != nil {
		return err
	}
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", mapStoreError(err))
	}
	defer tx.Rollback()

	// History first (FK on spec_files), then the rest of the cascade.
	if _, err := tx.Exec("DELETE FROM spec_versions WHERE spec_file_id IN (SELECT spec_file_id FROM spec_files WHERE project_id = ?)", id); err != nil {
		return fmt.Errorf("deleting spec history: %w", mapStoreError(err))
	}
	if _, err := tx.Exec("DELETE FROM spec_files WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting spec files: %w", mapStoreError(err))
	}
	if _, err := tx.Exec("DELETE FROM tasks WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting tasks: %w", mapStoreError(err))
	}
	if _, err := tx.Exec("DELETE FROM chat_messages WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting chat messages: %w", mapStoreError(err))
	}
	if _, err := tx.Exec("DELETE FROM memory_items WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting memory items: %w", mapStoreError(err))
	}
	if _, err := tx.Exec("DELETE FROM projects WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting project: %w", mapStoreError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing project deletion: %w", mapStoreError(err))
	}
	return nil
}

// requireOwnerTx verifies inside tx that the project exists and belongs
// to the principal. Shared by every project-scoped mutation.
func requireOwnerTx(tx *sql.Tx, projectID, principal string) error {
	var owner string
	err := tx.QueryRow("SELECT owner_id FROM projects WHERE project_id = ?", projectID).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		return fmt.Errorf("checking project owner: %w", mapStoreError(err))
	}
	if owner != principal {
		return types.ErrForbidden
	}
	return nil
}

// requireOwner is the read-path variant of requireOwnerTx.
func (s *Store) requireOwner(projectID, principal string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	var owner string
	err = db.QueryRow("SELECT owner_id FROM projects WHERE project_id = ?", projectID).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		return fmt.Errorf("checking project owner: %w", mapStoreError(err))
	}
	if owner != principal {
		return types.ErrForbidden
	}
	return nil
}

// touchProjectTx refreshes projects.updated_at after a dependent-row
// mutation, keeping the "updated on every mutation" contract.
func touchProjectTx(tx *sql.Tx, projectID string, now time.Time) error {
	_, err := tx.Exec(
		"UPDATE projects SET updated_at = ? WHERE project_id = ?",
		now.Format(time.RFC3339), projectID,
	)
	if err != nil {
		return fmt.Errorf("touching project: %w", mapStoreError(err))
	}
	return nil
}

// hydrateProject converts a single row into a *types.Project.
func hydrateProject(row *sql.Row) (*types.Project, error) {
	var p types.Project
	var createdAt, updatedAt string
	if err := row.Scan(&p.ProjectID, &p.OwnerID, &p.Name, &p.Description, &p.Status, &p.Tier, &p.SandboxRef, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return finishProject(&p, createdAt, updatedAt)
}

// hydrateProjectFromRows converts a row from sql.Rows into a *types.Project.
func hydrateProjectFromRows(rows *sql.Rows) (*types.Project, error) {
	var p types.Project
	var createdAt, updatedAt string
	if err := rows.Scan(&p.ProjectID, &p.OwnerID, &p.Name, &p.Description, &p.Status, &p.Tier, &p.SandboxRef, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return finishProject(&p, createdAt, updatedAt)
}

func finishProject(p *types.Project, createdAt, updatedAt string) (*types.Project, error) {
	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return p, nil
}
