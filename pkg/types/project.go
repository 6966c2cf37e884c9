package types

import "time"

// Project states. Projects start as draft; the remaining values track the
// build pipeline. The store treats status as an opaque string; this set is
// validated by the API layer only.
const (
	ProjectStatusDraft    = "draft"
	ProjectStatusBuilding = "building"
	ProjectStatusReady    = "ready"
	ProjectStatusDeployed = "deployed"
	ProjectStatusError    = "error"
)

// validProjectStatuses is the set of status values the API layer accepts.
var validProjectStatuses = map[string]bool{
	ProjectStatusDraft:    true,
	ProjectStatusBuilding: true,
	ProjectStatusReady:    true,
	ProjectStatusDeployed: true,
	ProjectStatusError:    true,
}

// ValidProjectStatus reports whether status is a recognized project status.
func ValidProjectStatus(status string) bool {
	return validProjectStatuses[status]
}

// Project is a tenant-scoped workspace. It owns all spec files, tasks,
// chat messages, and memory items created under it; deleting the project
// removes them in the same transaction.
type Project struct {
	ProjectID   string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Tier        string     `json:"tier"`
	SandboxRef  *string    `json:"sandbox_ref,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProjectUpdate carries a partial update. Nil fields are left unchanged.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	SandboxRef  *string `json:"sandbox_ref,omitempty"`
}

// Empty reports whether the update would change nothing.
func (p ProjectUpdate) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil && p.SandboxRef == nil
}
