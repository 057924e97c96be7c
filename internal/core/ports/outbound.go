package ports

import (
	"context"
	"io"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

// SettingsStore persists the per-profile document settings. Load reports
// ok=false when no usable persisted value exists (absent or malformed),
// in which case callers fall back to defaults.
type SettingsStore interface {
	Load(ctx context.Context) (settings domain.DocumentsSettings, ok bool, err error)
	Save(ctx context.Context, settings domain.DocumentsSettings) error
}

// WarrantyRepository persists warranty record state.
type WarrantyRepository interface {
	Create(ctx context.Context, rec *domain.WarrantyRecord) error
	GetByID(ctx context.Context, id string) (*domain.WarrantyRecord, error)
	Update(ctx context.Context, rec *domain.WarrantyRecord) error
	SetStatus(ctx context.Context, id string, status domain.WarrantyStatus) error
	List(ctx context.Context) ([]domain.WarrantyRecord, error)
}

// ArtifactRepository persists artifact handles and their lifecycle.
type ArtifactRepository interface {
	Create(ctx context.Context, art *domain.Artifact) error
	GetByID(ctx context.Context, id string) (*domain.Artifact, error)
	LatestReady(ctx context.Context, warrantyID string) (*domain.Artifact, error)
	HasOutstanding(ctx context.Context, warrantyID string) (bool, error)
	MarkRendering(ctx context.Context, id string) error
	MarkReady(ctx context.Context, id string, pageCount int, byteSize int64) error
	MarkFailed(ctx context.Context, id string, errMessage string) error
	SupersedeReady(ctx context.Context, warrantyID, exceptID string) error
}

// DraftRepository persists invoice/quote drafts and their line items.
type DraftRepository interface {
	Create(ctx context.Context, draft *domain.DocumentDraft) error
	GetByID(ctx context.Context, id string) (*domain.DocumentDraft, error)
	Update(ctx context.Context, draft *domain.DocumentDraft) error
}

// ObjectStorage stores rendered artifact bytes.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// RenderQueue carries render jobs from the API to the worker.
type RenderQueue interface {
	PublishArtifactQueued(ctx context.Context, artifactID string) error
	SubscribeArtifactQueued(ctx context.Context, handler func(context.Context, string) error) error
}

// CertificateRenderer turns a completed record into PDF bytes. Callers
// validate the record before rendering.
type CertificateRenderer interface {
	Render(ctx context.Context, rec *domain.WarrantyRecord, settings domain.DocumentSettings) ([]byte, error)
}

// TemplateSource fetches an uploaded document template by reference.
type TemplateSource interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// ArtifactInspector examines rendered bytes for sanity and metadata.
type ArtifactInspector interface {
	PageCount(data []byte) (int, error)
}

// Catalog is the read-only product collaborator.
type Catalog interface {
	Categories() []string
	ProductsByCategory(category string) []domain.Product
	ProductByName(name string) (domain.Product, bool)
}

// ReportExporter builds tabular exports of warranty records.
type ReportExporter interface {
	WarrantyRegister(ctx context.Context, records []domain.WarrantyRecord) ([]byte, error)
}
