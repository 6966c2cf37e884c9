// Tests for task persistence.
package sqlite

import (
	"errors"
	"testing"

	"github.com/en-arthur/initflow-be/pkg/types"
)

func TestTasks_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.UserID, "tasked")

	ctx := map[string]any{"spec_version": float64(3)}
	task, err := s.CreateTask(p.ProjectID, types.AgentBackend, "generate handlers", ctx, owner.UserID)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Status != types.TaskStatusPending {
		t.Errorf("expected pending status, got %s", task.Status)
	}
	if task.CompletedAt != nil {
		t.Error("expected no completion timestamp on a new task")
	}

	got, err := s.GetTask(task.TaskID, owner.UserID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Description != "generate handlers" || got.AgentType != types.AgentBackend {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.InputContext["spec_version"] != float64(3) {
		t.Errorf("input context not persisted: %v", got.InputContext)
	}
}

func TestTasks_CreateInvalidAgent(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.UserID, "tasked")

	if _, err := s.CreateTask(p.ProjectID, "sorcery", "do magic", nil, owner.UserID); err == nil {
		t.Error("expected error for unknown agent type")
	}
}

func TestTasks_ListScoped(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com")
	other := seedUser(t, s, "other@example.com")
	p := seedProject(t, s, owner.UserID, "tasked")

	if _, err := s.CreateTask(p.ProjectID, types.AgentDesign, "draft design", nil, owner.UserID); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := s.CreateTask(p.ProjectID, types.AgentTesting, "write tests", nil, owner.UserID); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks, err := s.ListTasks(p.ProjectID, owner.UserID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}

	if _, err := s.ListTasks(p.ProjectID, other.UserID); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestTasks_UpdateStatus(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.UserID, "tasked")

	task, err := s.CreateTask(p.ProjectID, types.AgentBackend, "build it", nil, owner.UserID)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	got, err := s.UpdateTaskStatus(task.TaskID, types.TaskStatusInProgress, nil, owner.UserID)
	if err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if got.Status != types.TaskStatusInProgress {
		t.Errorf("expected in_progress, got %s", got.Status)
	}
	if got.CompletedAt != nil {
		t.Error("in-progress task should not have a completion timestamp")
	}

	output := map[string]any{"files": float64(4)}
	got, err = s.UpdateTaskStatus(task.TaskID, types.TaskStatusCompleted, output, owner.UserID)
	if err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if got.Status != types.TaskStatusCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("completed task must carry a completion timestamp")
	}
	if got.Output["files"] != float64(4) {
		t.Errorf("output not persisted: %v", got.Output)
	}
}

func TestTasks_UpdateStatusInvalid(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.UserID, "tasked")

	task, err := s.CreateTask(p.ProjectID, types.AgentBackend, "build it", nil, owner.UserID)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := s.UpdateTaskStatus(task.TaskID, "paused", nil, owner.UserID); !errors.Is(err, types.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := s.UpdateTaskStatus(generateUUID(), types.TaskStatusCompleted, nil, owner.UserID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTasks_GetScoped(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com")
	other := seedUser(t, s, "other@example.com")
	p := seedProject(t, s, owner.UserID, "tasked")

	task, err := s.CreateTask(p.ProjectID, types.AgentDesign, "draft", nil, owner.UserID)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := s.GetTask(task.TaskID, other.UserID); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := s.UpdateTaskStatus(task.TaskID, types.TaskStatusFailed, nil, other.UserID); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("expected ErrForbidden on update, got %v", err)
	}
}
