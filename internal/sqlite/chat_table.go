// This file implements the chat_messages table accessor for the SQLite
// backend. Messages are an append-only per-project conversation log.
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// AppendChatMessage adds a message to the project's conversation log.
func (s *Store) AppendChatMessage(projectID, role, content string, attachments []map[string]any, principal string) (*types.ChatMessage, error) {
	if projectID == "" {
		return nil, types.ErrInvalidID
	}
	if !types.ValidChatRole(role) {
		return nil, types.ErrInvalidRole
	}
	if content == "" {
		return nil, types.ErrInvalidContent
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg := &types.ChatMessage{
		MessageID:   generateUUID(),
		ProjectID:   projectID,
		Role:        role,
		Content:     content,
		Attachments: attachments,
		CreatedAt:   now,
	}

	var attachJSON *string
	if attachments != nil {
		data, err := json.Marshal(attachments)
		if err != nil {
			return nil, fmt.Errorf("encoding attachments: %w", err)
		}
		s := string(data)
		attachJSON = &s
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
		"INSERT INTO chat_messages (message_id, project_id, role, content, attachments, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		msg.MessageID, projectID, role, content, attachJSON, now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting chat message: %w", mapStoreError(err))
	}
	if err := touchProjectTx(tx, projectID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing chat message: %w", mapStoreError(err))
	}
	return msg, nil
}

// ListChatMessages returns the project's conversation log in insertion
// order, oldest first.
func (s *Store) ListChatMessages(projectID, principal string) ([]*types.ChatMessage, error) {
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

	rows, err := db.Query(
		"SELECT message_id, project_id, role, content, attachments, created_at FROM chat_messages WHERE project_id = ? ORDER BY created_at ASC, message_id ASC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying chat messages: %w", mapStoreError(err))
	}
	defer rows.Close()

	messages := []*types.ChatMessage{}
	for rows.Next() {
		var msg types.ChatMessage
		var attachJSON *string
		var createdAt string
		if err := rows.Scan(&msg.MessageID, &msg.ProjectID, &msg.Role, &msg.Content, &attachJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		msg.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if attachJSON != nil && *attachJSON != "" {
			if err := json.Unmarshal([]byte(*attachJSON), &msg.Attachments); err != nil {
				return nil, fmt.Errorf("decoding attachments: %w", err)
			}
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", mapStoreError(err))
	}
	return messages, nil
}
