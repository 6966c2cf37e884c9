package types

import "time"

// Standard spec file types. Every new project is seeded with these three.
// The store accepts any non-empty file type; the set is open.
const (
	SpecTypeDesign       = "design"
	SpecTypeRequirements = "requirements"
	SpecTypeTasks        = "tasks"
)

// StandardSpecTypes lists the file types seeded on project creation.
var StandardSpecTypes = []string{
	SpecTypeDesign,
	SpecTypeRequirements,
	SpecTypeTasks,
}

// SpecFile is the current version of one logical document within a
// project, keyed by (project, file type). There is at most one current
// row per key; its version equals the count of history entries plus one.
type SpecFile struct {
	// SpecFileID is a UUID v7, fixed for the lifetime of the lineage.
	SpecFileID string `json:"id"`

	// ProjectID is the owning project.
	ProjectID string `json:"project_id"`

	// FileType is the lineage discriminator within the project.
	FileType string `json:"file_type"`

	// Content is the current document body.
	Content string `json:"content"`

	// Version is a positive integer, strictly increasing per lineage
	// with no gaps and no reuse.
	Version int64 `json:"version"`

	// CreatedAt is the timestamp the lineage was created.
	CreatedAt time.Time `json:"created_at"`

	// CreatedBy is the principal that created the lineage.
	CreatedBy string `json:"created_by"`
}

// SpecVersion is an immutable snapshot recorded each time a SpecFile is
// superseded. History entries are never mutated; they disappear only when
// the owning project is deleted.
type SpecVersion struct {
	// VersionID is a UUID v7 of the history entry.
	VersionID string `json:"id"`

	// SpecFileID ties the entry to its lineage.
	SpecFileID string `json:"spec_file_id"`

	// Version is the version number this entry preserved.
	Version int64 `json:"version"`

	// Content is the document body at that version.
	Content string `json:"content"`

	// ChangesSummary is an optional human-readable description of the
	// write that superseded this content.
	ChangesSummary *string `json:"changes_summary,omitempty"`

	// CreatedAt is the timestamp the entry was archived.
	CreatedAt time.Time `json:"created_at"`

	// CreatedBy is the principal whose write archived this content.
	CreatedBy string `json:"created_by"`
}
