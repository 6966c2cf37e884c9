// This file implements the tasks table accessor for the SQLite backend.
// Tasks record agent work items per project; input_context and output are
// stored as JSON TEXT columns.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/en-arthur/initflow-be/pkg/types"
)

// CreateTask records a new agent task for the project in pending status.
func (s *Store) CreateTask(projectID, agentType, description string, inputContext map[string]any, principal string) (*types.Task, error) {
	if projectID == "" {
		return nil, types.ErrInvalidID
	}
	if !types.ValidAgentType(agentType) {
		return nil, types.ErrInvalidRole
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &types.Task{
		TaskID:       generateUUID(),
		ProjectID:    projectID,
		AgentType:    agentType,
		Description:  description,
		Status:       types.TaskStatusPending,
		InputContext: inputContext,
		CreatedAt:    now,
	}

	contextJSON, err := marshalJSONColumn(inputContext)
	if err != nil {
		return nil, fmt.Errorf("encoding task input context: %w", err)
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
		"INSERT INTO tasks (task_id, project_id, agent_type, description, status, input_context, output, created_at, completed_at) VALUES (?, ?, ?, ?, ?, ?, NULL, ?, NULL)",
		task.TaskID, projectID, agentType, description, task.Status, contextJSON, now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", mapStoreError(err))
	}
	if err := touchProjectTx(tx, projectID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing task: %w", mapStoreError(err))
	}
	return task, nil
}

// GetTask returns a task by id, if the principal owns its project.
func (s *Store) GetTask(taskID, principal string) (*types.Task, error) {
	if taskID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT task_id, project_id, agent_type, description, status, input_context, output, created_at, completed_at FROM tasks WHERE task_id = ?",
		taskID,
	)
	task, err := hydrateTask(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting task %s: %w", taskID, mapStoreError(err))
	}
	if err := s.requireOwner(task.ProjectID, principal); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns all tasks for the project, newest first.
func (s *Store) ListTasks(projectID, principal string) ([]*types.Task, error) {
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
		"SELECT task_id, project_id, agent_type, description, status, input_context, output, created_at, completed_at FROM tasks WHERE project_id = ? ORDER BY created_at DESC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", mapStoreError(err))
	}
	defer rows.Close()

	tasks := []*types.Task{}
	for rows.Next() {
		task, err := hydrateTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", mapStoreError(err))
	}
	return tasks, nil
}

// UpdateTaskStatus moves a task to a new status, recording output if
// given. Completed and failed tasks get a completion timestamp.
func (s *Store) UpdateTaskStatus(taskID, status string, output map[string]any, principal string) (*types.Task, error) {
	if taskID == "" {
		return nil, types.ErrInvalidID
	}
	if !types.ValidTaskStatus(status) {
		return nil, types.ErrInvalidStatus
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

	var projectID string
	if err := tx.QueryRow("SELECT project_id FROM tasks WHERE task_id = ?", taskID).Scan(&projectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("resolving task project: %w", mapStoreError(err))
	}
	if err := requireOwnerTx(tx, projectID, principal); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var completedAt *string
	if status == types.TaskStatusCompleted || status == types.TaskStatusFailed {
		ts := now.Format(time.RFC3339)
		completedAt = &ts
	}

	if output != nil {
		outputJSON, err := marshalJSONColumn(output)
		if err != nil {
			return nil, fmt.Errorf("encoding task output: %w", err)
		}
		_, err = tx.Exec(
			"UPDATE tasks SET status = ?, output = ?, completed_at = ? WHERE task_id = ?",
			status, outputJSON, completedAt, taskID,
		)
		if err != nil {
			return nil, fmt.Errorf("updating task: %w", mapStoreError(err))
		}
	} else {
		_, err = tx.Exec(
			"UPDATE tasks SET status = ?, completed_at = ? WHERE task_id = ?",
			status, completedAt, taskID,
		)
		if err != nil {
			return nil, fmt.Errorf("updating task: %w", mapStoreError(err))
		}
	}
	if err := touchProjectTx(tx, projectID, now); err != nil {
		return nil, err
	}

	row := tx.QueryRow(
		"SELECT task_id, project_id, agent_type, description, status, input_context, output, created_at, completed_at FROM tasks WHERE task_id = ?",
		taskID,
	)
	task, err := hydrateTask(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("re-reading task: %w", mapStoreError(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing task update: %w", mapStoreError(err))
	}
	return task, nil
}

// hydrateTask scans a task row via the given scan function, decoding the
// JSON columns.
func hydrateTask(scan func(...any) error) (*types.Task, error) {
	var task types.Task
	var contextJSON, outputJSON, completedAt *string
	var createdAt string
	err := scan(&task.TaskID, &task.ProjectID, &task.AgentType, &task.Description, &task.Status, &contextJSON, &outputJSON, &createdAt, &completedAt)
	if err != nil {
		return nil, err
	}
	task.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if completedAt != nil {
		done, err := time.Parse(time.RFC3339, *completedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing completed_at: %w", err)
		}
		task.CompletedAt = &done
	}
	if task.InputContext, err = unmarshalJSONColumn(contextJSON); err != nil {
		return nil, fmt.Errorf("decoding input context: %w", err)
	}
	if task.Output, err = unmarshalJSONColumn(outputJSON); err != nil {
		return nil, fmt.Errorf("decoding output: %w", err)
	}
	return &task, nil
}

// marshalJSONColumn encodes a map for a nullable JSON TEXT column.
func marshalJSONColumn(m map[string]any) (*string, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

// unmarshalJSONColumn decodes a nullable JSON TEXT column into a map.
func unmarshalJSONColumn(raw *string) (map[string]any, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(*raw), &m); err != nil {
		return nil, err
	}
	return m, nil
}
