// This file implements user persistence. Users are the principals every
// ownership check compares against; the store never sees raw passwords,
// only the hash produced by the auth layer.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// CreateUser inserts a new account at the free tier with the default
// credit balance. A duplicate email surfaces as ErrConflict via the
// UNIQUE constraint on users.email.
func (s *Store) CreateUser(email, name, passwordHash string) (*types.User, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	u := &types.User{
		UserID:           generateUUID(),
		Email:            email,
		Name:             name,
		PasswordHash:     passwordHash,
		Tier:             types.TierFree,
		CreditsRemaining: types.DefaultCredits,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err = db.Exec(
		"INSERT INTO users (user_id, email, name, password_hash, tier, credits_remaining, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		u.UserID, u.Email, u.Name, u.PasswordHash, u.Tier, u.CreditsRemaining,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", mapStoreError(err))
	}
	return u, nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(id string) (*types.User, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT user_id, email, name, password_hash, tier, credits_remaining, created_at, updated_at FROM users WHERE user_id = ?",
		id,
	)
	u, err := hydrateUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %s: %w", id, mapStoreError(err))
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *Store) GetUserByEmail(email string) (*types.User, error) {
	if email == "" {
		return nil, types.ErrInvalidEmail
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT user_id, email, name, password_hash, tier, credits_remaining, created_at, updated_at FROM users WHERE email = ?",
		email,
	)
	u, err := hydrateUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting user by email: %w", mapStoreError(err))
	}
	return u, nil
}

// CountProjects returns the number of projects owned by the user. The
// API layer uses this to enforce tier limits before creating a project.
func (s *Store) CountProjects(ownerID string) (int, error) {
	if ownerID == "" {
		return 0, types.ErrInvalidID
	}
	db, err := s.conn()
	if err != nil {
		return 0, err
	}

	var n int
	err = db.QueryRow("SELECT COUNT(*) FROM projects WHERE owner_id = ?", ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting projects: %w", mapStoreError(err))
	}
	return n, nil
}

// hydrateUser converts a single row into a *types.User.
func hydrateUser(row *sql.Row) (*types.User, error) {
	var u types.User
	var createdAt, updatedAt string
	if err := row.Scan(&u.UserID, &u.Email, &u.Name, &u.PasswordHash, &u.Tier, &u.CreditsRemaining, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	u.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &u, nil
}
