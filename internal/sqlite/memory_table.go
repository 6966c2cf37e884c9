// This file implements the memory_items table accessor for the SQLite
// backend. Items are project-scoped context the agent layer accumulates.
package sqlite

import (
	"fmt"
	"time"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// AddMemoryItem records a memory item against the project.
func (s *Store) AddMemoryItem(projectID, itemType, content string, metadata map[string]any, principal string) (*types.MemoryItem, error) {
	if projectID == "" {
		return nil, types.ErrInvalidID
	}
	if itemType == "" || content == "" {
		return nil, types.ErrInvalidContent
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &types.MemoryItem{
		ItemID:    generateUUID(),
		ProjectID: projectID,
		ItemType:  itemType,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: now,
	}

	metaJSON, err := marshalJSONColumn(metadata)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", mapStoreError(err))
	}
	defer tx.Rollback()

	if err := requireOwnerTx(tx, projectID, principal); err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		"INSERT INTO memory_items (item_id, project_id, item_type, content, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		item.ItemID, projectID, itemType, content, metaJSON, now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting memory item: %w", mapStoreError(err))
	}
	if err := touchProjectTx(tx, projectID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing memory item: %w", mapStoreError(err))
	}
	return item, nil
}

// ListMemoryItems returns the project's memory items, newest first.
// A non-empty itemType narrows the result to that type.
func (s *Store) ListMemoryItems(projectID, itemType, principal string) ([]*types.MemoryItem, error) {
	if projectID == "" {
		return nil, types.ErrInvalidID
	}
	if err := s.requireOwner(projectID, principal); err != nil {
		return nil, err
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT item_id, project_id, item_type, content, metadata, created_at FROM memory_items WHERE project_id = ?"
	args := []any{projectID}
	if itemType != "" {
		query += " AND item_type = ?"
		args = append(args, itemType)
	}
	query += " ORDER BY created_at DESC, item_id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying memory items: %w", mapStoreError(err))
	}
	defer rows.Close()

	items := []*types.MemoryItem{}
	for rows.Next() {
		var item types.MemoryItem
		var metaJSON *string
		var createdAt string
		if err := rows.Scan(&item.ItemID, &item.ProjectID, &item.ItemType, &item.Content, &metaJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning memory item: %w", err)
		}
		item.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if item.Metadata, err = unmarshalJSONColumn(metaJSON); err != nil {
			return nil, fmt.Errorf("decoding metadata: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memory items: %w", mapStoreError(err))
	}
	return items, nil
}
