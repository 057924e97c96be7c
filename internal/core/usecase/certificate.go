package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/maestrofurniture/docgen/internal/core/domain"
	"github.com/maestrofurniture/docgen/internal/core/ports"
)

// CertificateUseCase orchestrates artifact generation. Generate is the async
// path: it validates the record, creates a pending artifact, freezes the
// record and hands the job to the render queue. RenderArtifact is the worker
// side. RenderNow is the synchronous composition used by print when no ready
// artifact exists yet.
type CertificateUseCase struct {
	warranties ports.WarrantyRepository
	artifacts  ports.ArtifactRepository
	queue      ports.RenderQueue
	renderer   ports.CertificateRenderer
	settings   ports.SettingsService
	storage    ports.ObjectStorage
	inspector  ports.ArtifactInspector
	now        func() time.Time
}

func NewCertificateUseCase(
	warranties ports.WarrantyRepository,
	artifacts ports.ArtifactRepository,
	queue ports.RenderQueue,
	renderer ports.CertificateRenderer,
	settings ports.SettingsService,
	storage ports.ObjectStorage,
	inspector ports.ArtifactInspector,
) *CertificateUseCase {
	return &CertificateUseCase{
		warranties: warranties,
		artifacts:  artifacts,
		queue:      queue,
		renderer:   renderer,
		settings:   settings,
		storage:    storage,
		inspector:  inspector,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Generate validates the record, rejects re-entrant generation while a render
// is outstanding, and enqueues a pending artifact. The record freezes until
// reopened.
func (uc *CertificateUseCase) Generate(ctx context.Context, warrantyID string) (*domain.Artifact, error) {
	rec, err := uc.warranties.GetByID(ctx, warrantyID)
	if err != nil {
		return nil, err
	}
	if err := rec.ValidateForRender(); err != nil {
		return nil, err
	}

	outstanding, err := uc.artifacts.HasOutstanding(ctx, warrantyID)
	if err != nil {
		return nil, fmt.Errorf("check outstanding renders: %w", err)
	}
	if outstanding {
		return nil, domain.WrapError(domain.ErrRenderInProgress, "generate certificate", errors.New("a render is already outstanding for this record"))
	}

	art, err := uc.createPendingArtifact(ctx, rec)
	if err != nil {
		return nil, err
	}

	// Freeze before publishing so a queued job can never race an edit.
	if err := uc.warranties.SetStatus(ctx, warrantyID, domain.WarrantyGenerated); err != nil {
		uc.markFailed(ctx, art.ID, err)
		return nil, fmt.Errorf("freeze warranty record: %w", err)
	}

	if err := uc.queue.PublishArtifactQueued(ctx, art.ID); err != nil {
		uc.markFailed(ctx, art.ID, err)
		if thawErr := uc.warranties.SetStatus(ctx, warrantyID, domain.WarrantyDraft); thawErr != nil {
			return nil, fmt.Errorf("publish render job: %w; unfreeze record: %v", err, thawErr)
		}
		return nil, fmt.Errorf("publish render job: %w", err)
	}

	slog.Info("artifact_queued", "artifact_id", art.ID, "warranty_id", warrantyID)
	return art, nil
}

// RenderArtifact runs one queued render job to completion or failure. A job
// whose artifact is no longer pending is skipped, which makes redelivery
// harmless.
func (uc *CertificateUseCase) RenderArtifact(ctx context.Context, artifactID string) error {
	art, err := uc.artifacts.GetByID(ctx, artifactID)
	if err != nil {
		return err
	}
	if art.Status != domain.ArtifactPending {
		slog.Warn("render_job_skipped", "artifact_id", artifactID, "status", string(art.Status))
		return nil
	}

	if err := uc.artifacts.MarkRendering(ctx, artifactID); err != nil {
		return fmt.Errorf("mark rendering: %w", err)
	}

	data, pageCount, err := uc.renderBytes(ctx, art.WarrantyID)
	if err != nil {
		uc.markFailed(ctx, artifactID, err)
		return err
	}

	if err := uc.storage.Save(ctx, art.StoragePath, bytes.NewReader(data)); err != nil {
		err = fmt.Errorf("store artifact bytes: %w", err)
		uc.markFailed(ctx, artifactID, err)
		return err
	}

	if err := uc.artifacts.SupersedeReady(ctx, art.WarrantyID, artifactID); err != nil {
		err = fmt.Errorf("supersede previous artifacts: %w", err)
		uc.markFailed(ctx, artifactID, err)
		return err
	}
	if err := uc.artifacts.MarkReady(ctx, artifactID, pageCount, int64(len(data))); err != nil {
		err = fmt.Errorf("mark ready: %w", err)
		uc.markFailed(ctx, artifactID, err)
		return err
	}

	slog.Info("artifact_ready", "artifact_id", artifactID, "pages", pageCount, "bytes", len(data))
	return nil
}

// RenderNow renders synchronously and returns the finished artifact with its
// bytes. Used by the print composition when no ready artifact exists. Every
// failure after the pending artifact is created marks it failed, so a broken
// attempt never leaves a phantom outstanding render behind.
func (uc *CertificateUseCase) RenderNow(ctx context.Context, warrantyID string) (*domain.Artifact, []byte, error) {
	rec, err := uc.warranties.GetByID(ctx, warrantyID)
	if err != nil {
		return nil, nil, err
	}
	if err := rec.ValidateForRender(); err != nil {
		return nil, nil, err
	}

	outstanding, err := uc.artifacts.HasOutstanding(ctx, warrantyID)
	if err != nil {
		return nil, nil, fmt.Errorf("check outstanding renders: %w", err)
	}
	if outstanding {
		return nil, nil, domain.WrapError(domain.ErrRenderInProgress, "render certificate now", errors.New("a render is already outstanding for this record"))
	}

	art, err := uc.createPendingArtifact(ctx, rec)
	if err != nil {
		return nil, nil, err
	}

	data, pageCount, err := uc.renderBytes(ctx, warrantyID)
	if err != nil {
		uc.markFailed(ctx, art.ID, err)
		return nil, nil, err
	}
	if err := uc.storage.Save(ctx, art.StoragePath, bytes.NewReader(data)); err != nil {
		err = fmt.Errorf("store artifact bytes: %w", err)
		uc.markFailed(ctx, art.ID, err)
		return nil, nil, err
	}
	if err := uc.artifacts.SupersedeReady(ctx, warrantyID, art.ID); err != nil {
		err = fmt.Errorf("supersede previous artifacts: %w", err)
		uc.markFailed(ctx, art.ID, err)
		return nil, nil, err
	}
	if err := uc.artifacts.MarkReady(ctx, art.ID, pageCount, int64(len(data))); err != nil {
		err = fmt.Errorf("mark ready: %w", err)
		uc.markFailed(ctx, art.ID, err)
		return nil, nil, err
	}
	if err := uc.warranties.SetStatus(ctx, warrantyID, domain.WarrantyGenerated); err != nil {
		return nil, nil, fmt.Errorf("freeze warranty record: %w", err)
	}

	art.Status = domain.ArtifactReady
	art.PageCount = pageCount
	art.ByteSize = int64(len(data))
	return art, data, nil
}

// markFailed records the failure reason on the artifact. Best effort: the
// original error is what callers see, so a failed status write only logs.
func (uc *CertificateUseCase) markFailed(ctx context.Context, artifactID string, cause error) {
	if err := uc.artifacts.MarkFailed(ctx, artifactID, cause.Error()); err != nil {
		slog.Error("artifact_mark_failed", "artifact_id", artifactID, "cause", cause, "error", err)
	}
}

func (uc *CertificateUseCase) createPendingArtifact(ctx context.Context, rec *domain.WarrantyRecord) (*domain.Artifact, error) {
	now := uc.now()
	art := &domain.Artifact{
		ID:         uuid.NewString(),
		WarrantyID: rec.ID,
		Filename:   domain.ArtifactFilename(rec.WarrantyNumber),
		Status:     domain.ArtifactPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	art.StoragePath = art.ID + ".pdf"
	if err := uc.artifacts.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create artifact record: %w", err)
	}
	return art, nil
}

func (uc *CertificateUseCase) renderBytes(ctx context.Context, warrantyID string) ([]byte, int, error) {
	rec, err := uc.warranties.GetByID(ctx, warrantyID)
	if err != nil {
		return nil, 0, err
	}
	ws, err := uc.settings.ForKind(ctx, domain.KindWarranty)
	if err != nil {
		return nil, 0, err
	}

	data, err := uc.renderer.Render(ctx, rec, ws)
	if err != nil {
		return nil, 0, fmt.Errorf("render certificate: %w", err)
	}
	if len(data) == 0 {
		return nil, 0, domain.WrapError(domain.ErrTemporary, "render certificate", errors.New("renderer produced no bytes"))
	}

	pageCount, err := uc.inspector.PageCount(data)
	if err != nil {
		return nil, 0, domain.WrapError(domain.ErrTemporary, "inspect artifact", err)
	}
	if pageCount < 1 {
		return nil, 0, domain.WrapError(domain.ErrTemporary, "inspect artifact", errors.New("rendered document has no pages"))
	}
	return data, pageCount, nil
}
