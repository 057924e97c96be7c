package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maestrofurniture/docgen/internal/core/domain"
	"github.com/maestrofurniture/docgen/internal/core/ports"
)

// WarrantyUseCase owns the warranty form lifecycle: draft creation with
// defaults, field-by-field edits with derived-total recomputation, and the
// frozen/reopen transitions around generation.
type WarrantyUseCase struct {
	repo    ports.WarrantyRepository
	catalog ports.Catalog
	now     func() time.Time
}

func NewWarrantyUseCase(repo ports.WarrantyRepository, catalog ports.Catalog) *WarrantyUseCase {
	return &WarrantyUseCase{
		repo:    repo,
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (uc *WarrantyUseCase) Create(ctx context.Context) (*domain.WarrantyRecord, error) {
	rec := domain.NewWarrantyRecord(uuid.NewString(), uc.now())
	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create warranty record: %w", err)
	}
	return rec, nil
}

func (uc *WarrantyUseCase) Get(ctx context.Context, id string) (*domain.WarrantyRecord, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *WarrantyUseCase) List(ctx context.Context) ([]domain.WarrantyRecord, error) {
	return uc.repo.List(ctx)
}

// Update applies one round of form edits. Generated records are frozen until
// explicitly reopened. Selecting a product pulls its category and, unless the
// patch overrides it, defaults the unit price from the catalog.
func (uc *WarrantyUseCase) Update(ctx context.Context, id string, patch domain.WarrantyPatch) (*domain.WarrantyRecord, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status == domain.WarrantyGenerated {
		return nil, domain.WrapError(domain.ErrRecordFrozen, "update warranty", fmt.Errorf("record %s is generated; reopen it first", id))
	}

	if err := uc.applyPatch(rec, patch); err != nil {
		return nil, err
	}
	rec.RecomputeTotal()
	rec.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update warranty record: %w", err)
	}
	return rec, nil
}

func (uc *WarrantyUseCase) applyPatch(rec *domain.WarrantyRecord, patch domain.WarrantyPatch) error {
	if patch.CustomerName != nil {
		rec.CustomerName = *patch.CustomerName
	}
	if patch.CustomerCity != nil {
		rec.CustomerCity = *patch.CustomerCity
	}
	if patch.ProductName != nil {
		product, ok := uc.catalog.ProductByName(*patch.ProductName)
		if !ok {
			return domain.WrapError(domain.ErrInvalidInput, "update warranty", fmt.Errorf("unknown product %q", *patch.ProductName))
		}
		rec.ProductName = product.Name
		rec.ProductCategory = product.Category
		if patch.Price == nil {
			rec.Price = product.Price
		}
	}
	if patch.Quantity != nil {
		q := *patch.Quantity
		if q < 1 {
			q = 1
		}
		rec.Quantity = q
	}
	if patch.Price != nil {
		p := *patch.Price
		if p < 0 {
			p = 0
		}
		rec.Price = p
	}
	if patch.Discount != nil {
		d := *patch.Discount
		if d < 0 {
			d = 0
		}
		rec.Discount = d
	}
	if patch.WarrantyPeriod != nil {
		period, err := domain.ParseWarrantyPeriod(*patch.WarrantyPeriod)
		if err != nil {
			return err
		}
		rec.WarrantyPeriod = period
	}
	if patch.PurchaseDate != nil {
		date, err := time.Parse("2006-01-02", *patch.PurchaseDate)
		if err != nil {
			return domain.WrapError(domain.ErrInvalidInput, "update warranty", fmt.Errorf("purchase date %q: want YYYY-MM-DD", *patch.PurchaseDate))
		}
		rec.PurchaseDate = date
	}
	return nil
}

// Reopen unfreezes a generated record for further editing.
func (uc *WarrantyUseCase) Reopen(ctx context.Context, id string) (*domain.WarrantyRecord, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != domain.WarrantyGenerated {
		return nil, domain.WrapError(domain.ErrInvalidInput, "reopen warranty", errors.New("record is not generated"))
	}
	if err := uc.repo.SetStatus(ctx, id, domain.WarrantyDraft); err != nil {
		return nil, fmt.Errorf("reopen warranty record: %w", err)
	}
	rec.Status = domain.WarrantyDraft
	return rec, nil
}
