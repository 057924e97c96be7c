package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

type DraftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) Create(ctx context.Context, draft *domain.DocumentDraft) error {
	itemsJSON, err := json.Marshal(draft.Ledger.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO drafts (
	id, kind, customer_name, customer_address, items, discount, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		draft.ID, string(draft.Kind), draft.CustomerName, draft.CustomerAddress,
		itemsJSON, draft.Discount, draft.CreatedAt, draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert draft: %w", err)
	}
	return nil
}

func (r *DraftRepository) GetByID(ctx context.Context, id string) (*domain.DocumentDraft, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, kind, customer_name, customer_address, items, discount, created_at, updated_at
FROM drafts
WHERE id = $1
`, id)

	var draft domain.DocumentDraft
	var kind string
	var itemsRaw []byte
	err := row.Scan(
		&draft.ID, &kind, &draft.CustomerName, &draft.CustomerAddress,
		&itemsRaw, &draft.Discount, &draft.CreatedAt, &draft.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get draft", fmt.Errorf("draft %s", id))
		}
		return nil, fmt.Errorf("scan draft: %w", err)
	}

	if err := json.Unmarshal(itemsRaw, &draft.Ledger.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	draft.Kind = domain.DocumentKind(kind)
	return &draft, nil
}

func (r *DraftRepository) Update(ctx context.Context, draft *domain.DocumentDraft) error {
	itemsJSON, err := json.Marshal(draft.Ledger.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE drafts
SET customer_name = $2, customer_address = $3, items = $4, discount = $5, updated_at = $6
WHERE id = $1
`,
		draft.ID, draft.CustomerName, draft.CustomerAddress, itemsJSON, draft.Discount, draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	return requireRowsAffected(res, "update draft", draft.ID)
}
