package types

import "time"

// Memory item types. The set mirrors what the agent layer records;
// the store does not interpret them.
const (
	MemoryConversation = "conversation"
	MemoryDecision     = "decision"
	MemoryPattern      = "pattern"
)

// MemoryItem is a piece of project context retained for the agent layer.
// Only storage and project-scoped retrieval live here; similarity search
// is the agent layer's concern.
type MemoryItem struct {
	ItemID    string         `json:"id"`
	ProjectID string         `json:"project_id"`
	ItemType  string         `json:"item_type"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
