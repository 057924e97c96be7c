package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

type artifactRepoFake struct {
	arts map[string]*domain.Artifact
}

func newArtifactRepoFake() *artifactRepoFake {
	return &artifactRepoFake{arts: make(map[string]*domain.Artifact)}
}

func (f *artifactRepoFake) Create(_ context.Context, art *domain.Artifact) error {
	copyArt := *art
	f.arts[art.ID] = &copyArt
	return nil
}

func (f *artifactRepoFake) GetByID(_ context.Context, id string) (*domain.Artifact, error) {
	art, ok := f.arts[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get artifact", errNotFoundFake)
	}
	copyArt := *art
	return &copyArt, nil
}

func (f *artifactRepoFake) LatestReady(_ context.Context, warrantyID string) (*domain.Artifact, error) {
	var latest *domain.Artifact
	for _, art := range f.arts {
		if art.WarrantyID == warrantyID && art.Status == domain.ArtifactReady {
			if latest == nil || art.CreatedAt.After(latest.CreatedAt) {
				latest = art
			}
		}
	}
	if latest == nil {
		return nil, domain.WrapError(domain.ErrNotFound, "latest ready artifact", errNotFoundFake)
	}
	copyArt := *latest
	return &copyArt, nil
}

func (f *artifactRepoFake) HasOutstanding(_ context.Context, warrantyID string) (bool, error) {
	for _, art := range f.arts {
		if art.WarrantyID == warrantyID && art.Outstanding() {
			return true, nil
		}
	}
	return false, nil
}

func (f *artifactRepoFake) setStatus(id string, status domain.ArtifactStatus) error {
	art, ok := f.arts[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "set artifact status", errNotFoundFake)
	}
	art.Status = status
	return nil
}

func (f *artifactRepoFake) MarkRendering(_ context.Context, id string) error {
	return f.setStatus(id, domain.ArtifactRendering)
}

func (f *artifactRepoFake) MarkReady(_ context.Context, id string, pageCount int, byteSize int64) error {
	if err := f.setStatus(id, domain.ArtifactReady); err != nil {
		return err
	}
	f.arts[id].PageCount = pageCount
	f.arts[id].ByteSize = byteSize
	return nil
}

func (f *artifactRepoFake) MarkFailed(_ context.Context, id string, errMessage string) error {
	if err := f.setStatus(id, domain.ArtifactFailed); err != nil {
		return err
	}
	f.arts[id].Error = errMessage
	return nil
}

func (f *artifactRepoFake) SupersedeReady(_ context.Context, warrantyID, exceptID string) error {
	for _, art := range f.arts {
		if art.WarrantyID == warrantyID && art.ID != exceptID && art.Status == domain.ArtifactReady {
			art.Status = domain.ArtifactSuperseded
		}
	}
	return nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishArtifactQueued(_ context.Context, artifactID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, artifactID)
	return nil
}

func (f *queueFake) SubscribeArtifactQueued(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

type rendererFake struct {
	out   []byte
	err   error
	calls int
}

func (f *rendererFake) Render(_ context.Context, rec *domain.WarrantyRecord, _ domain.DocumentSettings) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil {
		return f.out, nil
	}
	return []byte("%PDF-1.4 " + rec.CustomerName), nil
}

type storageFake struct {
	objects map[string][]byte
	saveErr error
}

func newStorageFake() *storageFake {
	return &storageFake{objects: make(map[string][]byte)}
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.objects[key] = raw
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := f.objects[key]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "open object", errNotFoundFake)
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

type inspectorFake struct {
	pages int
	err   error
}

func (f inspectorFake) PageCount([]byte) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.pages == 0 {
		return 1, nil
	}
	return f.pages, nil
}

type certFixture struct {
	warranties *warrantyRepoFake
	artifacts  *artifactRepoFake
	queue      *queueFake
	renderer   *rendererFake
	storage    *storageFake
	uc         *CertificateUseCase
}

func newCertFixture(t *testing.T) *certFixture {
	t.Helper()
	settings, err := NewSettingsUseCase(context.Background(), &settingsStoreFake{})
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	fx := &certFixture{
		warranties: newWarrantyRepoFake(),
		artifacts:  newArtifactRepoFake(),
		queue:      &queueFake{},
		renderer:   &rendererFake{},
		storage:    newStorageFake(),
	}
	fx.uc = NewCertificateUseCase(
		fx.warranties, fx.artifacts, fx.queue, fx.renderer, settings, fx.storage, inspectorFake{},
	)
	return fx
}

func (fx *certFixture) completeRecord(t *testing.T) *domain.WarrantyRecord {
	t.Helper()
	warrantyUC := NewWarrantyUseCase(fx.warranties, catalogFake{})
	rec, err := warrantyUC.Create(context.Background())
	if err != nil {
		t.Fatalf("create record: %v", err)
	}
	rec, err = warrantyUC.Update(context.Background(), rec.ID, domain.WarrantyPatch{
		CustomerName: strPtr("Amina Berrada"),
		CustomerCity: strPtr("Casablanca"),
		ProductName:  strPtr("Grace Accent Chair"),
	})
	if err != nil {
		t.Fatalf("complete record: %v", err)
	}
	return rec
}

func TestGenerateRejectsIncompleteRecord(t *testing.T) {
	fx := newCertFixture(t)
	warrantyUC := NewWarrantyUseCase(fx.warranties, catalogFake{})
	rec, _ := warrantyUC.Create(context.Background())
	rec, _ = warrantyUC.Update(context.Background(), rec.ID, domain.WarrantyPatch{
		CustomerName: strPtr("Amina Berrada"),
	})

	_, err := fx.uc.Generate(context.Background(), rec.ID)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "productName") {
		t.Fatalf("error should name productName, got %q", err.Error())
	}
	if len(fx.artifacts.arts) != 0 {
		t.Fatalf("no artifact must be created on validation failure")
	}
}

func TestGenerateQueuesPendingArtifactAndFreezesRecord(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)

	art, err := fx.uc.Generate(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if art.Status != domain.ArtifactPending {
		t.Fatalf("status = %s, want pending", art.Status)
	}
	if art.Filename != domain.ArtifactFilename(rec.WarrantyNumber) {
		t.Fatalf("filename = %q", art.Filename)
	}
	if len(fx.queue.published) != 1 || fx.queue.published[0] != art.ID {
		t.Fatalf("render job not published: %v", fx.queue.published)
	}

	frozen, _ := fx.warranties.GetByID(context.Background(), rec.ID)
	if frozen.Status != domain.WarrantyGenerated {
		t.Fatalf("record should freeze after generate, status = %s", frozen.Status)
	}
}

func TestGenerateRejectsReentrantRender(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)

	if _, err := fx.uc.Generate(context.Background(), rec.ID); err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}
	_, err := fx.uc.Generate(context.Background(), rec.ID)
	if !domain.IsKind(err, domain.ErrRenderInProgress) {
		t.Fatalf("expected ErrRenderInProgress, got %v", err)
	}
}

func TestRenderArtifactProducesReadyArtifact(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)
	art, _ := fx.uc.Generate(context.Background(), rec.ID)

	if err := fx.uc.RenderArtifact(context.Background(), art.ID); err != nil {
		t.Fatalf("RenderArtifact() error = %v", err)
	}

	rendered, _ := fx.artifacts.GetByID(context.Background(), art.ID)
	if rendered.Status != domain.ArtifactReady {
		t.Fatalf("status = %s, want ready", rendered.Status)
	}
	if rendered.ByteSize == 0 || rendered.PageCount != 1 {
		t.Fatalf("metadata not recorded: %+v", rendered)
	}
	if _, ok := fx.storage.objects[rendered.StoragePath]; !ok {
		t.Fatalf("artifact bytes not stored at %q", rendered.StoragePath)
	}
}

func TestRenderArtifactSupersedesPreviousReady(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)

	first, _ := fx.uc.Generate(context.Background(), rec.ID)
	if err := fx.uc.RenderArtifact(context.Background(), first.ID); err != nil {
		t.Fatalf("first render: %v", err)
	}

	// Edit and regenerate: the old handle must be invalidated.
	if _, err := NewWarrantyUseCase(fx.warranties, catalogFake{}).Reopen(context.Background(), rec.ID); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	second, err := fx.uc.Generate(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if err := fx.uc.RenderArtifact(context.Background(), second.ID); err != nil {
		t.Fatalf("second render: %v", err)
	}

	old, _ := fx.artifacts.GetByID(context.Background(), first.ID)
	if old.Status != domain.ArtifactSuperseded {
		t.Fatalf("first artifact status = %s, want superseded", old.Status)
	}
	current, _ := fx.artifacts.GetByID(context.Background(), second.ID)
	if current.Status != domain.ArtifactReady {
		t.Fatalf("second artifact status = %s, want ready", current.Status)
	}
}

func TestRenderArtifactMarksFailedOnRenderError(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)
	art, _ := fx.uc.Generate(context.Background(), rec.ID)

	fx.renderer.err = errors.New("font load failed")
	if err := fx.uc.RenderArtifact(context.Background(), art.ID); err == nil {
		t.Fatalf("expected render error")
	}

	failed, _ := fx.artifacts.GetByID(context.Background(), art.ID)
	if failed.Status != domain.ArtifactFailed {
		t.Fatalf("status = %s, want failed", failed.Status)
	}
	if failed.Error == "" {
		t.Fatalf("failure reason should be recorded")
	}
}

func TestRenderArtifactSkipsNonPendingJobs(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)
	art, _ := fx.uc.Generate(context.Background(), rec.ID)
	if err := fx.uc.RenderArtifact(context.Background(), art.ID); err != nil {
		t.Fatalf("render: %v", err)
	}

	// Redelivery of a finished job is a no-op.
	if err := fx.uc.RenderArtifact(context.Background(), art.ID); err != nil {
		t.Fatalf("redelivered job should be skipped, got %v", err)
	}
	if fx.renderer.calls != 1 {
		t.Fatalf("renderer called %d times, want 1", fx.renderer.calls)
	}
}

func TestGenerateUnfreezesRecordWhenPublishFails(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)

	fx.queue.err = errors.New("connection refused")
	if _, err := fx.uc.Generate(context.Background(), rec.ID); err == nil {
		t.Fatalf("expected publish error")
	}

	thawed, _ := fx.warranties.GetByID(context.Background(), rec.ID)
	if thawed.Status != domain.WarrantyDraft {
		t.Fatalf("record status = %s, want draft after failed publish", thawed.Status)
	}
	for _, art := range fx.artifacts.arts {
		if art.Outstanding() {
			t.Fatalf("failed publish left artifact %s in status %s", art.ID, art.Status)
		}
	}

	// The record stays editable and a later generate goes through.
	fx.queue.err = nil
	if _, err := fx.uc.Generate(context.Background(), rec.ID); err != nil {
		t.Fatalf("Generate() after recovery error = %v", err)
	}
}

func TestRenderNowFailureLeavesNoOutstandingRender(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)

	fx.storage.saveErr = errors.New("disk full")
	if _, _, err := fx.uc.RenderNow(context.Background(), rec.ID); err == nil {
		t.Fatalf("expected storage error")
	}

	for _, art := range fx.artifacts.arts {
		if art.Status != domain.ArtifactFailed {
			t.Fatalf("artifact status = %s, want failed", art.Status)
		}
		if art.Error == "" {
			t.Fatalf("failure reason should be recorded")
		}
	}

	// The broken attempt must not block the async path afterwards.
	fx.storage.saveErr = nil
	if _, err := fx.uc.Generate(context.Background(), rec.ID); err != nil {
		t.Fatalf("Generate() after failed RenderNow error = %v", err)
	}
}

func TestRenderNowRejectedWhileRenderOutstanding(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)

	if _, err := fx.uc.Generate(context.Background(), rec.ID); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, _, err := fx.uc.RenderNow(context.Background(), rec.ID)
	if !domain.IsKind(err, domain.ErrRenderInProgress) {
		t.Fatalf("expected ErrRenderInProgress, got %v", err)
	}
	if fx.renderer.calls != 0 {
		t.Fatalf("renderer called %d times for a queued record, want 0", fx.renderer.calls)
	}
}

func TestRenderNowReturnsBytesAndReadyArtifact(t *testing.T) {
	fx := newCertFixture(t)
	rec := fx.completeRecord(t)

	art, data, err := fx.uc.RenderNow(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("RenderNow() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected rendered bytes")
	}
	if art.Status != domain.ArtifactReady {
		t.Fatalf("status = %s, want ready", art.Status)
	}
	if art.Filename != domain.ArtifactFilename(rec.WarrantyNumber) {
		t.Fatalf("filename = %q", art.Filename)
	}
}
