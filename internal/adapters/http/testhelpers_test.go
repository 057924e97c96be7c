package httpadapter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/maestrofurniture/docgen/internal/core/domain"
	"github.com/maestrofurniture/docgen/internal/core/usecase"
)

type warrantyRepoFake struct {
	records map[string]*domain.WarrantyRecord
}

func (f *warrantyRepoFake) Create(_ context.Context, rec *domain.WarrantyRecord) error {
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *warrantyRepoFake) GetByID(_ context.Context, id string) (*domain.WarrantyRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get warranty", errors.New(id))
	}
	cp := *rec
	return &cp, nil
}

func (f *warrantyRepoFake) Update(_ context.Context, rec *domain.WarrantyRecord) error {
	if _, ok := f.records[rec.ID]; !ok {
		return domain.WrapError(domain.ErrNotFound, "update warranty", errors.New(rec.ID))
	}
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *warrantyRepoFake) SetStatus(_ context.Context, id string, status domain.WarrantyStatus) error {
	rec, ok := f.records[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "set status", errors.New(id))
	}
	rec.Status = status
	return nil
}

func (f *warrantyRepoFake) List(context.Context) ([]domain.WarrantyRecord, error) {
	out := make([]domain.WarrantyRecord, 0, len(f.records))
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, nil
}

type artifactRepoFake struct {
	arts map[string]*domain.Artifact
}

func (f *artifactRepoFake) Create(_ context.Context, art *domain.Artifact) error {
	cp := *art
	f.arts[art.ID] = &cp
	return nil
}

func (f *artifactRepoFake) GetByID(_ context.Context, id string) (*domain.Artifact, error) {
	art, ok := f.arts[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get artifact", errors.New(id))
	}
	cp := *art
	return &cp, nil
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
		return nil, domain.WrapError(domain.ErrNotFound, "latest ready artifact", errors.New(warrantyID))
	}
	cp := *latest
	return &cp, nil
}

func (f *artifactRepoFake) HasOutstanding(_ context.Context, warrantyID string) (bool, error) {
	for _, art := range f.arts {
		if art.WarrantyID == warrantyID && art.Outstanding() {
			return true, nil
		}
	}
	return false, nil
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

func (f *artifactRepoFake) MarkFailed(_ context.Context, id string, msg string) error {
	if err := f.setStatus(id, domain.ArtifactFailed); err != nil {
		return err
	}
	f.arts[id].Error = msg
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

func (f *artifactRepoFake) setStatus(id string, status domain.ArtifactStatus) error {
	art, ok := f.arts[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "set artifact status", errors.New(id))
	}
	art.Status = status
	return nil
}

type draftRepoFake struct {
	drafts map[string]*domain.DocumentDraft
}

func (f *draftRepoFake) Create(_ context.Context, draft *domain.DocumentDraft) error {
	cp := *draft
	cp.Ledger.Items = append([]domain.LineItem(nil), draft.Ledger.Items...)
	f.drafts[draft.ID] = &cp
	return nil
}

func (f *draftRepoFake) GetByID(_ context.Context, id string) (*domain.DocumentDraft, error) {
	draft, ok := f.drafts[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get draft", errors.New(id))
	}
	cp := *draft
	cp.Ledger.Items = append([]domain.LineItem(nil), draft.Ledger.Items...)
	return &cp, nil
}

func (f *draftRepoFake) Update(ctx context.Context, draft *domain.DocumentDraft) error {
	if _, ok := f.drafts[draft.ID]; !ok {
		return domain.WrapError(domain.ErrNotFound, "update draft", errors.New(draft.ID))
	}
	return f.Create(ctx, draft)
}

type settingsStoreFake struct {
	saved *domain.DocumentsSettings
}

func (f *settingsStoreFake) Load(context.Context) (domain.DocumentsSettings, bool, error) {
	if f.saved == nil {
		return domain.DocumentsSettings{}, false, nil
	}
	return *f.saved, true, nil
}

func (f *settingsStoreFake) Save(_ context.Context, s domain.DocumentsSettings) error {
	cp := s
	f.saved = &cp
	return nil
}

type storageFake struct {
	objects map[string][]byte
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
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
		return nil, domain.WrapError(domain.ErrNotFound, "open object", errors.New(key))
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

type queueFake struct {
	published []string
}

func (f *queueFake) PublishArtifactQueued(_ context.Context, artifactID string) error {
	f.published = append(f.published, artifactID)
	return nil
}

func (f *queueFake) SubscribeArtifactQueued(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

type rendererFake struct{}

func (rendererFake) Render(_ context.Context, rec *domain.WarrantyRecord, _ domain.DocumentSettings) ([]byte, error) {
	return []byte("%PDF-1.4 certificate " + rec.WarrantyNumber), nil
}

type inspectorFake struct{}

func (inspectorFake) PageCount([]byte) (int, error) { return 1, nil }

type catalogFake struct{}

func (catalogFake) Categories() []string { return []string{"Chairs", "Tables"} }

func (catalogFake) ProductsByCategory(category string) []domain.Product {
	if category == "Chairs" {
		return []domain.Product{{ID: 1, Name: "Grace Accent Chair", Category: "Chairs", Price: 12799}}
	}
	return nil
}

func (catalogFake) ProductByName(name string) (domain.Product, bool) {
	if name == "Grace Accent Chair" {
		return domain.Product{ID: 1, Name: "Grace Accent Chair", Category: "Chairs", Price: 12799}, true
	}
	return domain.Product{}, false
}

type exporterFake struct{}

func (exporterFake) WarrantyRegister(context.Context, []domain.WarrantyRecord) ([]byte, error) {
	return []byte("PK workbook"), nil
}

type testEnv struct {
	handler      http.Handler
	certificates *usecase.CertificateUseCase
	queue        *queueFake
}

func newTestEnv(t *testing.T, traffic TrafficConfig) *testEnv {
	t.Helper()

	settingsUC, err := usecase.NewSettingsUseCase(context.Background(), &settingsStoreFake{})
	if err != nil {
		t.Fatalf("settings usecase: %v", err)
	}

	warrantyRepo := &warrantyRepoFake{records: make(map[string]*domain.WarrantyRecord)}
	artifactRepo := &artifactRepoFake{arts: make(map[string]*domain.Artifact)}
	draftRepo := &draftRepoFake{drafts: make(map[string]*domain.DocumentDraft)}
	storage := &storageFake{objects: make(map[string][]byte)}
	queue := &queueFake{}

	warrantyUC := usecase.NewWarrantyUseCase(warrantyRepo, catalogFake{})
	certificateUC := usecase.NewCertificateUseCase(
		warrantyRepo, artifactRepo, queue, rendererFake{}, settingsUC, storage, inspectorFake{},
	)
	artifactUC := usecase.NewArtifactUseCase(artifactRepo, storage, certificateUC)
	draftUC := usecase.NewDraftUseCase(draftRepo, settingsUC)
	reportUC := usecase.NewReportUseCase(warrantyRepo, exporterFake{})

	router := NewRouter(
		settingsUC, warrantyUC, certificateUC, artifactUC, draftUC, reportUC, catalogFake{},
		nil, traffic,
	)
	return &testEnv{
		handler:      router.Handler(),
		certificates: certificateUC,
		queue:        queue,
	}
}

func noTraffic() TrafficConfig {
	return TrafficConfig{}
}
