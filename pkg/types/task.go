package types

import "time"

// Agent types a task can be assigned to.
const (
	AgentDesign  = "design"
	AgentBackend = "backend"
	AgentTesting = "testing"
)

// Task states.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
)

var validAgentTypes = map[string]bool{
	AgentDesign:  true,
	AgentBackend: true,
	AgentTesting: true,
}

var validTaskStatuses = map[string]bool{
	TaskStatusPending:    true,
	TaskStatusInProgress: true,
	TaskStatusCompleted:  true,
	TaskStatusFailed:     true,
}

// ValidAgentType reports whether agentType is recognized.
func ValidAgentType(agentType string) bool {
	return validAgentTypes[agentType]
}

// ValidTaskStatus reports whether status is recognized.
func ValidTaskStatus(status string) bool {
	return validTaskStatuses[status]
}

// Task records a unit of agent work requested for a project. The backend
// stores and serves these records; running the agent itself is out of
// scope and happens elsewhere.
type Task struct {
	TaskID       string         `json:"id"`
	ProjectID    string         `json:"project_id"`
	AgentType    string         `json:"agent_type"`
	Description  string         `json:"description"`
	Status       string         `json:"status"`
	InputContext map[string]any `json:"input_context,omitempty"`
	Output       map[string]any `json:"output,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}
