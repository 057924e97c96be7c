package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type WarrantyStatus string

const (
	WarrantyDraft     WarrantyStatus = "draft"
	WarrantyGenerated WarrantyStatus = "generated"
)

type WarrantyPeriod string

const (
	PeriodOneYear    WarrantyPeriod = "1 year"
	PeriodTwoYears   WarrantyPeriod = "2 years"
	PeriodThreeYears WarrantyPeriod = "3 years"
	PeriodFiveYears  WarrantyPeriod = "5 years"
	PeriodLifetime   WarrantyPeriod = "lifetime"
)

func ParseWarrantyPeriod(s string) (WarrantyPeriod, error) {
	switch WarrantyPeriod(s) {
	case PeriodOneYear, PeriodTwoYears, PeriodThreeYears, PeriodFiveYears, PeriodLifetime:
		return WarrantyPeriod(s), nil
	default:
		return "", WrapError(ErrInvalidInput, "parse warranty period", fmt.Errorf("unknown warranty period %q", s))
	}
}

// WarrantyRecord is the state behind one warranty certificate. Total is
// derived and recomputed whenever price, quantity or discount change.
type WarrantyRecord struct {
	ID              string         `json:"id"`
	WarrantyNumber  string         `json:"warranty_number"`
	CustomerName    string         `json:"customer_name"`
	CustomerCity    string         `json:"customer_city"`
	ProductCategory string         `json:"product_category"`
	ProductName     string         `json:"product_name"`
	Quantity        int            `json:"quantity"`
	Price           float64        `json:"price"`
	Discount        float64        `json:"discount"`
	Total           float64        `json:"total"`
	WarrantyPeriod  WarrantyPeriod `json:"warranty_period"`
	PurchaseDate    time.Time      `json:"purchase_date"`
	Status          WarrantyStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewWarrantyNumber produces a WAR-prefixed random 5-digit number. Not
// globally unique; collisions are possible and unhandled.
func NewWarrantyNumber() string {
	return fmt.Sprintf("WAR-%05d", rand.IntN(100000))
}

// NewWarrantyRecord seeds a draft record: quantity 1, one-year period,
// purchase date defaulting to the creation date.
func NewWarrantyRecord(id string, now time.Time) *WarrantyRecord {
	return &WarrantyRecord{
		ID:             id,
		WarrantyNumber: NewWarrantyNumber(),
		Quantity:       1,
		WarrantyPeriod: PeriodOneYear,
		PurchaseDate:   now,
		Status:         WarrantyDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// RecomputeTotal keeps the derived total consistent with its inputs.
func (r *WarrantyRecord) RecomputeTotal() {
	r.Total = r.Price*float64(r.Quantity) - r.Discount
}

// ValidateForRender checks the required fields before any render attempt.
// The first missing field is named in the error.
func (r *WarrantyRecord) ValidateForRender() error {
	if r.CustomerName == "" {
		return WrapError(ErrInvalidInput, "validate warranty", fmt.Errorf("customerName is required"))
	}
	if r.ProductName == "" {
		return WrapError(ErrInvalidInput, "validate warranty", fmt.Errorf("productName is required"))
	}
	return nil
}

// WarrantyPatch carries one round of form edits. Nil fields are untouched.
type WarrantyPatch struct {
	CustomerName   *string  `json:"customer_name"`
	CustomerCity   *string  `json:"customer_city"`
	ProductName    *string  `json:"product_name"`
	Quantity       *int     `json:"quantity"`
	Price          *float64 `json:"price"`
	Discount       *float64 `json:"discount"`
	WarrantyPeriod *string  `json:"warranty_period"`
	PurchaseDate   *string  `json:"purchase_date"`
}

// ArtifactFilename derives the deterministic download name for a record.
func ArtifactFilename(warrantyNumber string) string {
	return fmt.Sprintf("warranty-%s.pdf", warrantyNumber)
}
