package domain

import "time"

type ArtifactStatus string

const (
	ArtifactPending    ArtifactStatus = "pending"
	ArtifactRendering  ArtifactStatus = "rendering"
	ArtifactReady      ArtifactStatus = "ready"
	ArtifactFailed     ArtifactStatus = "failed"
	ArtifactSuperseded ArtifactStatus = "superseded"
)

// Artifact is the handle to one rendered document. Exactly one ready
// artifact is live per record version; a successful re-render supersedes the
// previous one.
type Artifact struct {
	ID          string         `json:"id"`
	WarrantyID  string         `json:"warranty_id"`
	Filename    string         `json:"filename"`
	StoragePath string         `json:"storage_path"`
	Status      ArtifactStatus `json:"status"`
	PageCount   int            `json:"page_count,omitempty"`
	ByteSize    int64          `json:"byte_size,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Outstanding reports whether a render for this artifact has been requested
// but not yet finished.
func (a *Artifact) Outstanding() bool {
	return a.Status == ArtifactPending || a.Status == ArtifactRendering
}
