package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maestrofurniture/docgen/internal/core/domain"
	"github.com/maestrofurniture/docgen/internal/core/ports"
)

// DraftUseCase owns invoice/quote draft ledgers. The aggregate summary is
// recomputed on every read from the current items, the document kind's tax
// settings and the draft discount; it is never stored.
type DraftUseCase struct {
	repo     ports.DraftRepository
	settings ports.SettingsService
	now      func() time.Time
}

func NewDraftUseCase(repo ports.DraftRepository, settings ports.SettingsService) *DraftUseCase {
	return &DraftUseCase{
		repo:     repo,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *DraftUseCase) Create(ctx context.Context, kind domain.DocumentKind) (*domain.DocumentDraft, error) {
	if kind != domain.KindInvoice && kind != domain.KindQuote {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create draft", fmt.Errorf("kind %q has no line-item ledger", kind))
	}
	draft := domain.NewDocumentDraft(uuid.NewString(), kind, uc.now())
	if err := uc.repo.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return draft, nil
}

func (uc *DraftUseCase) Get(ctx context.Context, id string) (*domain.DocumentDraft, domain.Aggregate, error) {
	draft, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Aggregate{}, err
	}
	agg, err := uc.aggregate(ctx, draft)
	if err != nil {
		return nil, domain.Aggregate{}, err
	}
	return draft, agg, nil
}

func (uc *DraftUseCase) UpdateHeader(ctx context.Context, id string, patch domain.DraftPatch) (*domain.DocumentDraft, domain.Aggregate, error) {
	return uc.mutate(ctx, id, func(draft *domain.DocumentDraft) error {
		if patch.CustomerName != nil {
			draft.CustomerName = *patch.CustomerName
		}
		if patch.CustomerAddress != nil {
			draft.CustomerAddress = *patch.CustomerAddress
		}
		if patch.Discount != nil {
			d := *patch.Discount
			if d < 0 {
				d = 0
			}
			draft.Discount = d
		}
		return nil
	})
}

func (uc *DraftUseCase) AddItem(ctx context.Context, id string) (*domain.DocumentDraft, domain.Aggregate, error) {
	return uc.mutate(ctx, id, func(draft *domain.DocumentDraft) error {
		draft.Ledger.AddItem()
		return nil
	})
}

func (uc *DraftUseCase) UpdateItem(ctx context.Context, id string, index int, field domain.ItemField, raw string) (*domain.DocumentDraft, domain.Aggregate, error) {
	return uc.mutate(ctx, id, func(draft *domain.DocumentDraft) error {
		return draft.Ledger.UpdateItem(index, field, raw)
	})
}

func (uc *DraftUseCase) RemoveItem(ctx context.Context, id string, index int) (*domain.DocumentDraft, domain.Aggregate, error) {
	return uc.mutate(ctx, id, func(draft *domain.DocumentDraft) error {
		return draft.Ledger.RemoveItem(index)
	})
}

func (uc *DraftUseCase) mutate(ctx context.Context, id string, apply func(*domain.DocumentDraft) error) (*domain.DocumentDraft, domain.Aggregate, error) {
	draft, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Aggregate{}, err
	}
	if err := apply(draft); err != nil {
		return nil, domain.Aggregate{}, err
	}
	draft.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, draft); err != nil {
		return nil, domain.Aggregate{}, fmt.Errorf("update draft: %w", err)
	}
	agg, err := uc.aggregate(ctx, draft)
	if err != nil {
		return nil, domain.Aggregate{}, err
	}
	return draft, agg, nil
}

func (uc *DraftUseCase) aggregate(ctx context.Context, draft *domain.DocumentDraft) (domain.Aggregate, error) {
	ds, err := uc.settings.ForKind(ctx, draft.Kind)
	if err != nil {
		return domain.Aggregate{}, err
	}
	taxEnabled := ds.Visible(domain.FieldTax)
	return domain.ComputeAggregate(draft.Ledger.Items, taxEnabled, ds.TaxPercent(), draft.Discount), nil
}
