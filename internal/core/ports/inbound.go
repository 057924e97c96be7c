package ports

import (
	"context"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

// SettingsService is the inbound contract for document settings management.
type SettingsService interface {
	Get(ctx context.Context) (domain.DocumentsSettings, error)
	UpdateAll(ctx context.Context, settings domain.DocumentsSettings) error
	UpdateOne(ctx context.Context, kind domain.DocumentKind, settings domain.DocumentSettings) error
	Visibility(ctx context.Context, kind domain.DocumentKind) (map[domain.FieldName]bool, error)
	ForKind(ctx context.Context, kind domain.DocumentKind) (domain.DocumentSettings, error)
}

// WarrantyService is the inbound contract for warranty record editing.
type WarrantyService interface {
	Create(ctx context.Context) (*domain.WarrantyRecord, error)
	Get(ctx context.Context, id string) (*domain.WarrantyRecord, error)
	Update(ctx context.Context, id string, patch domain.WarrantyPatch) (*domain.WarrantyRecord, error)
	Reopen(ctx context.Context, id string) (*domain.WarrantyRecord, error)
	List(ctx context.Context) ([]domain.WarrantyRecord, error)
}

// CertificateService orchestrates artifact generation.
type CertificateService interface {
	Generate(ctx context.Context, warrantyID string) (*domain.Artifact, error)
	RenderArtifact(ctx context.Context, artifactID string) error
	RenderNow(ctx context.Context, warrantyID string) (*domain.Artifact, []byte, error)
}

// ArtifactService operates on live artifact handles.
type ArtifactService interface {
	Get(ctx context.Context, id string) (*domain.Artifact, error)
	Preview(ctx context.Context, id string) (*domain.Artifact, []byte, error)
	Download(ctx context.Context, id string) (*domain.Artifact, []byte, error)
	PrintWarranty(ctx context.Context, warrantyID string) (*domain.Artifact, []byte, error)
}

// DraftService is the inbound contract for invoice/quote draft ledgers.
type DraftService interface {
	Create(ctx context.Context, kind domain.DocumentKind) (*domain.DocumentDraft, error)
	Get(ctx context.Context, id string) (*domain.DocumentDraft, domain.Aggregate, error)
	UpdateHeader(ctx context.Context, id string, patch domain.DraftPatch) (*domain.DocumentDraft, domain.Aggregate, error)
	AddItem(ctx context.Context, id string) (*domain.DocumentDraft, domain.Aggregate, error)
	UpdateItem(ctx context.Context, id string, index int, field domain.ItemField, raw string) (*domain.DocumentDraft, domain.Aggregate, error)
	RemoveItem(ctx context.Context, id string, index int) (*domain.DocumentDraft, domain.Aggregate, error)
}

// ReportService builds downloadable reports.
type ReportService interface {
	WarrantyRegisterXLSX(ctx context.Context) ([]byte, error)
}
