package types

import "time"

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

var validChatRoles = map[string]bool{
	ChatRoleUser:      true,
	ChatRoleAssistant: true,
	ChatRoleSystem:    true,
}

// ValidChatRole reports whether role is recognized.
func ValidChatRole(role string) bool {
	return validChatRoles[role]
}

// ChatMessage is one entry in a project's conversation log.
type ChatMessage struct {
	MessageID   string           `json:"id"`
	ProjectID   string           `json:"project_id"`
	Role        string           `json:"role"`
	Content     string           `json:"content"`
	Attachments []map[string]any `json:"attachments,omitempty"`
	CreatedAt   time.Time        `json:"timestamp"`
}
