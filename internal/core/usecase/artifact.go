package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/maestrofurniture/docgen/internal/core/domain"
	"github.com/maestrofurniture/docgen/internal/core/ports"
)

// ArtifactUseCase exposes preview, download and print over live artifact
// handles. All three return the exact stored bytes, so repeated calls on an
// unchanged handle are byte-identical.
type ArtifactUseCase struct {
	artifacts   ports.ArtifactRepository
	storage     ports.ObjectStorage
	certificate ports.CertificateService
}

func NewArtifactUseCase(
	artifacts ports.ArtifactRepository,
	storage ports.ObjectStorage,
	certificate ports.CertificateService,
) *ArtifactUseCase {
	return &ArtifactUseCase{
		artifacts:   artifacts,
		storage:     storage,
		certificate: certificate,
	}
}

func (uc *ArtifactUseCase) Get(ctx context.Context, id string) (*domain.Artifact, error) {
	return uc.artifacts.GetByID(ctx, id)
}

func (uc *ArtifactUseCase) Preview(ctx context.Context, id string) (*domain.Artifact, []byte, error) {
	return uc.open(ctx, id)
}

func (uc *ArtifactUseCase) Download(ctx context.Context, id string) (*domain.Artifact, []byte, error) {
	return uc.open(ctx, id)
}

// PrintWarranty serves the latest ready artifact for a record. When none
// exists but the record is complete enough to render, it renders one
// synchronously before serving.
func (uc *ArtifactUseCase) PrintWarranty(ctx context.Context, warrantyID string) (*domain.Artifact, []byte, error) {
	art, err := uc.artifacts.LatestReady(ctx, warrantyID)
	if err == nil {
		data, readErr := uc.read(ctx, art)
		if readErr != nil {
			return nil, nil, readErr
		}
		return art, data, nil
	}
	if !domain.IsKind(err, domain.ErrNotFound) {
		return nil, nil, err
	}
	return uc.certificate.RenderNow(ctx, warrantyID)
}

func (uc *ArtifactUseCase) open(ctx context.Context, id string) (*domain.Artifact, []byte, error) {
	art, err := uc.artifacts.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	switch art.Status {
	case domain.ArtifactReady:
	case domain.ArtifactPending, domain.ArtifactRendering:
		return nil, nil, domain.WrapError(domain.ErrRenderInProgress, "open artifact", errors.New("artifact is not rendered yet"))
	case domain.ArtifactSuperseded:
		// Regeneration invalidates the old handle.
		return nil, nil, domain.WrapError(domain.ErrNotFound, "open artifact", errors.New("artifact was superseded by a newer render"))
	default:
		return nil, nil, domain.WrapError(domain.ErrInvalidInput, "open artifact", fmt.Errorf("artifact is %s", art.Status))
	}

	data, err := uc.read(ctx, art)
	if err != nil {
		return nil, nil, err
	}
	return art, data, nil
}

func (uc *ArtifactUseCase) read(ctx context.Context, art *domain.Artifact) ([]byte, error) {
	rc, err := uc.storage.Open(ctx, art.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open stored artifact: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read stored artifact: %w", err)
	}
	return data, nil
}
