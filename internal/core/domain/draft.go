package domain

import "time"

// DocumentDraft is an invoice or quote under construction: customer header,
// the line-item ledger and a document-level discount. The aggregate summary
// is derived on read, never stored.
type DocumentDraft struct {
	ID              string       `json:"id"`
	Kind            DocumentKind `json:"kind"`
	CustomerName    string       `json:"customer_name"`
	CustomerAddress string       `json:"customer_address"`
	Ledger          Ledger       `json:"ledger"`
	Discount        float64      `json:"discount"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// NewDocumentDraft seeds a draft with a single blank line item, matching the
// empty form row the editor starts with.
func NewDocumentDraft(id string, kind DocumentKind, now time.Time) *DocumentDraft {
	draft := &DocumentDraft{
		ID:        id,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	draft.Ledger.AddItem()
	return draft
}

// DraftPatch carries header-level draft edits. Nil fields are untouched.
type DraftPatch struct {
	CustomerName    *string  `json:"customer_name"`
	CustomerAddress *string  `json:"customer_address"`
	Discount        *float64 `json:"discount"`
}
