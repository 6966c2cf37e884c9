// Tests for memory item persistence.
package sqlite

import (
	"errors"
	"testing"

	"github.com/en-arthur/initflow-be/pkg/types"
)

func TestMemory_AddAndList(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.UserID, "remembered")

	_, err := s.AddMemoryItem(p.ProjectID, types.MemoryDecision, "chose sqlite", map[string]any{"confidence": "high"}, owner.UserID)
	if err != nil {
		t.Fatalf("AddMemoryItem failed: %v", err)
	}
	_, err = s.AddMemoryItem(p.ProjectID, types.MemoryPattern, "repository pattern", nil, owner.UserID)
	if err != nil {
		t.Fatalf("AddMemoryItem failed: %v", err)
	}

	items, err := s.ListMemoryItems(p.ProjectID, "", owner.UserID)
	if err != nil {
		t.Fatalf("ListMemoryItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	// Filter narrows to one type.
	items, err = s.ListMemoryItems(p.ProjectID, types.MemoryDecision, owner.UserID)
	if err != nil {
		t.Fatalf("ListMemoryItems(decision) failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 decision item, got %d", len(items))
	}
	if items[0].Content != "chose sqlite" {
		t.Errorf("unexpected content %q", items[0].Content)
	}
	if items[0].Metadata["confidence"] != "high" {
		t.Errorf("metadata not persisted: %v", items[0].Metadata)
	}
}

func TestMemory_Validation(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com")
	p := seedProject(t, s, owner.UserID, "remembered")

	if _, err := s.AddMemoryItem(p.ProjectID, "", "content", nil, owner.UserID); !errors.Is(err, types.ErrInvalidContent) {
		t.Errorf("expected ErrInvalidContent for empty type, got %v", err)
	}
	if _, err := s.AddMemoryItem(p.ProjectID, types.MemoryDecision, "", nil, owner.UserID); !errors.Is(err, types.ErrInvalidContent) {
		t.Errorf("expected ErrInvalidContent for empty content, got %v", err)
	}
}

func TestMemory_Scoped(t *testing.T) {
	s := newTestStore(t)
	owner := seedUser(t, s, "owner@example.com")
	other := seedUser(t, s, "other@example.com")
	p := seedProject(t, s, owner.UserID, "remembered")

	if _, err := s.AddMemoryItem(p.ProjectID, types.MemoryDecision, "secret", nil, other.UserID); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("expected ErrForbidden on add, got %v", err)
	}
	if _, err := s.ListMemoryItems(p.ProjectID, "", other.UserID); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("expected ErrForbidden on list, got %v", err)
	}
}
