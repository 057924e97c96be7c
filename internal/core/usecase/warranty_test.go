package usecase

import (
	"context"
	"testing"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

type warrantyRepoFake struct {
	records map[string]*domain.WarrantyRecord
}

func newWarrantyRepoFake() *warrantyRepoFake {
	return &warrantyRepoFake{records: make(map[string]*domain.WarrantyRecord)}
}

func (f *warrantyRepoFake) Create(_ context.Context, rec *domain.WarrantyRecord) error {
	copyRec := *rec
	f.records[rec.ID] = &copyRec
	return nil
}

func (f *warrantyRepoFake) GetByID(_ context.Context, id string) (*domain.WarrantyRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "get warranty", errNotFoundFake)
	}
	copyRec := *rec
	return &copyRec, nil
}

func (f *warrantyRepoFake) Update(_ context.Context, rec *domain.WarrantyRecord) error {
	if _, ok := f.records[rec.ID]; !ok {
		return domain.WrapError(domain.ErrNotFound, "update warranty", errNotFoundFake)
	}
	copyRec := *rec
	f.records[rec.ID] = &copyRec
	return nil
}

func (f *warrantyRepoFake) SetStatus(_ context.Context, id string, status domain.WarrantyStatus) error {
	rec, ok := f.records[id]
	if !ok {
		return domain.WrapError(domain.ErrNotFound, "set status", errNotFoundFake)
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

var errNotFoundFake = errFake("no such record")

type errFake string

func (e errFake) Error() string { return string(e) }

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(v float64) *float64 { return &v }

func TestWarrantyCreateSeedsDefaults(t *testing.T) {
	uc := NewWarrantyUseCase(newWarrantyRepoFake(), catalogFake{})
	rec, err := uc.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Quantity != 1 || rec.Status != domain.WarrantyDraft {
		t.Fatalf("unexpected defaults: %+v", rec)
	}
}

func TestWarrantyUpdateDefaultsPriceFromCatalog(t *testing.T) {
	repo := newWarrantyRepoFake()
	uc := NewWarrantyUseCase(repo, catalogFake{})
	rec, _ := uc.Create(context.Background())

	updated, err := uc.Update(context.Background(), rec.ID, domain.WarrantyPatch{
		ProductName: strPtr("Grace Accent Chair"),
		Quantity:    intPtr(2),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Price != 12799 {
		t.Fatalf("price = %v, want catalog default 12799", updated.Price)
	}
	if updated.ProductCategory != "Chairs" {
		t.Fatalf("category = %q, want Chairs", updated.ProductCategory)
	}
	if updated.Total != 2*12799 {
		t.Fatalf("total = %v, want %v", updated.Total, 2*12799.0)
	}
}

func TestWarrantyUpdatePriceOverrideWins(t *testing.T) {
	uc := NewWarrantyUseCase(newWarrantyRepoFake(), catalogFake{})
	rec, _ := uc.Create(context.Background())

	updated, err := uc.Update(context.Background(), rec.ID, domain.WarrantyPatch{
		ProductName: strPtr("Grace Accent Chair"),
		Price:       floatPtr(9999),
		Discount:    floatPtr(99),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Price != 9999 {
		t.Fatalf("price = %v, want override 9999", updated.Price)
	}
	if updated.Total != 9999-99 {
		t.Fatalf("total = %v, want %v", updated.Total, 9999-99.0)
	}
}

func TestWarrantyUpdateRejectsUnknownProduct(t *testing.T) {
	uc := NewWarrantyUseCase(newWarrantyRepoFake(), catalogFake{})
	rec, _ := uc.Create(context.Background())

	_, err := uc.Update(context.Background(), rec.ID, domain.WarrantyPatch{ProductName: strPtr("Floating Shelf")})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWarrantyUpdateClampsOutOfRangeValues(t *testing.T) {
	uc := NewWarrantyUseCase(newWarrantyRepoFake(), catalogFake{})
	rec, _ := uc.Create(context.Background())

	updated, err := uc.Update(context.Background(), rec.ID, domain.WarrantyPatch{
		Quantity: intPtr(-3),
		Price:    floatPtr(-10),
		Discount: floatPtr(-1),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Quantity != 1 || updated.Price != 0 || updated.Discount != 0 {
		t.Fatalf("clamping failed: %+v", updated)
	}
}

func TestWarrantyUpdateRejectsFrozenRecord(t *testing.T) {
	repo := newWarrantyRepoFake()
	uc := NewWarrantyUseCase(repo, catalogFake{})
	rec, _ := uc.Create(context.Background())
	if err := repo.SetStatus(context.Background(), rec.ID, domain.WarrantyGenerated); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	_, err := uc.Update(context.Background(), rec.ID, domain.WarrantyPatch{CustomerName: strPtr("x")})
	if !domain.IsKind(err, domain.ErrRecordFrozen) {
		t.Fatalf("expected ErrRecordFrozen, got %v", err)
	}
}

func TestWarrantyReopenUnfreezes(t *testing.T) {
	repo := newWarrantyRepoFake()
	uc := NewWarrantyUseCase(repo, catalogFake{})
	rec, _ := uc.Create(context.Background())
	_ = repo.SetStatus(context.Background(), rec.ID, domain.WarrantyGenerated)

	reopened, err := uc.Reopen(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Reopen() error = %v", err)
	}
	if reopened.Status != domain.WarrantyDraft {
		t.Fatalf("status = %s, want draft", reopened.Status)
	}

	if _, err := uc.Update(context.Background(), rec.ID, domain.WarrantyPatch{CustomerName: strPtr("x")}); err != nil {
		t.Fatalf("reopened record should accept edits: %v", err)
	}
}

func TestWarrantyReopenRequiresGeneratedState(t *testing.T) {
	uc := NewWarrantyUseCase(newWarrantyRepoFake(), catalogFake{})
	rec, _ := uc.Create(context.Background())
	if _, err := uc.Reopen(context.Background(), rec.ID); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
