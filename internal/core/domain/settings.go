package domain

import (
	"errors"
	"fmt"
)

type DocumentKind string

const (
	KindInvoice  DocumentKind = "invoice"
	KindDelivery DocumentKind = "delivery"
	KindWarranty DocumentKind = "warranty"
	KindQuote    DocumentKind = "quote"
)

func ParseDocumentKind(s string) (DocumentKind, error) {
	switch DocumentKind(s) {
	case KindInvoice, KindDelivery, KindWarranty, KindQuote:
		return DocumentKind(s), nil
	default:
		return "", WrapError(ErrInvalidInput, "parse document kind", fmt.Errorf("unknown kind %q", s))
	}
}

// FieldName is a closed enumeration of printable document fields. Settings
// maps are keyed by these names only; unknown keys are rejected on update and
// read as hidden everywhere else.
type FieldName string

const (
	FieldInvoiceNumber   FieldName = "invoiceNumber"
	FieldDeliveryNumber  FieldName = "deliveryNumber"
	FieldWarrantyNumber  FieldName = "warrantyNumber"
	FieldQuoteNumber     FieldName = "quoteNumber"
	FieldCustomerName    FieldName = "customerName"
	FieldCustomerAddress FieldName = "customerAddress"
	FieldProductDetails  FieldName = "productDetails"
	FieldTax             FieldName = "tax"
	FieldDeliveryDate    FieldName = "deliveryDate"
	FieldSignature       FieldName = "signature"
	FieldWarrantyPeriod  FieldName = "warrantyPeriod"
	FieldPurchaseDate    FieldName = "purchaseDate"
	FieldValidityPeriod  FieldName = "validityPeriod"
	FieldTermsConditions FieldName = "termsConditions"
)

// FieldsForKind enumerates the fields a document kind may display, in the
// order they appear on the printed document.
func FieldsForKind(kind DocumentKind) []FieldName {
	switch kind {
	case KindInvoice:
		return []FieldName{
			FieldInvoiceNumber, FieldCustomerName, FieldCustomerAddress,
			FieldProductDetails, FieldTax, FieldTermsConditions,
		}
	case KindDelivery:
		return []FieldName{
			FieldDeliveryNumber, FieldCustomerName, FieldCustomerAddress,
			FieldProductDetails, FieldDeliveryDate, FieldSignature,
		}
	case KindWarranty:
		return []FieldName{
			FieldWarrantyNumber, FieldCustomerName, FieldProductDetails,
			FieldWarrantyPeriod, FieldPurchaseDate, FieldTermsConditions,
		}
	case KindQuote:
		return []FieldName{
			FieldQuoteNumber, FieldCustomerName, FieldCustomerAddress,
			FieldProductDetails, FieldTax, FieldValidityPeriod, FieldTermsConditions,
		}
	default:
		return nil
	}
}

// DocumentSettings configures one document kind: which fields the printed
// document includes, the tax rate (invoice and quote only) and an optional
// template reference (warranty only, legacy template-fill strategy).
type DocumentSettings struct {
	Fields       map[FieldName]bool `json:"fields"`
	TaxRate      *float64           `json:"taxRate,omitempty"`
	TemplateName string             `json:"templateName,omitempty"`
	TemplateURL  string             `json:"templateUrl,omitempty"`
}

// Visible reports whether a field is shown. Absent keys read as hidden.
func (d DocumentSettings) Visible(field FieldName) bool {
	return d.Fields[field]
}

// TaxPercent returns the configured tax rate, or 0 when unset.
func (d DocumentSettings) TaxPercent() float64 {
	if d.TaxRate == nil {
		return 0
	}
	return *d.TaxRate
}

// DocumentsSettings is the whole per-profile configuration, one entry per
// document kind. A single shared instance exists per session.
type DocumentsSettings struct {
	Invoice  DocumentSettings `json:"invoice"`
	Delivery DocumentSettings `json:"delivery"`
	Warranty DocumentSettings `json:"warranty"`
	Quote    DocumentSettings `json:"quote"`
}

func (s DocumentsSettings) ForKind(kind DocumentKind) (DocumentSettings, error) {
	switch kind {
	case KindInvoice:
		return s.Invoice, nil
	case KindDelivery:
		return s.Delivery, nil
	case KindWarranty:
		return s.Warranty, nil
	case KindQuote:
		return s.Quote, nil
	default:
		return DocumentSettings{}, WrapError(ErrInvalidInput, "settings for kind", fmt.Errorf("unknown kind %q", kind))
	}
}

func (s *DocumentsSettings) SetKind(kind DocumentKind, ds DocumentSettings) error {
	switch kind {
	case KindInvoice:
		s.Invoice = ds
	case KindDelivery:
		s.Delivery = ds
	case KindWarranty:
		s.Warranty = ds
	case KindQuote:
		s.Quote = ds
	default:
		return WrapError(ErrInvalidInput, "set settings for kind", fmt.Errorf("unknown kind %q", kind))
	}
	return nil
}

// ValidateForKind rejects settings that reference fields outside the kind's
// closed enumeration, tax rates on kinds that have none, and template
// references on kinds other than warranty.
func ValidateForKind(kind DocumentKind, ds DocumentSettings) error {
	allowed := make(map[FieldName]bool, len(FieldsForKind(kind)))
	for _, f := range FieldsForKind(kind) {
		allowed[f] = true
	}
	if len(allowed) == 0 {
		return WrapError(ErrInvalidInput, "validate settings", fmt.Errorf("unknown kind %q", kind))
	}
	for f := range ds.Fields {
		if !allowed[f] {
			return WrapError(ErrInvalidInput, "validate settings", fmt.Errorf("field %q is not valid for kind %q", f, kind))
		}
	}
	if ds.TaxRate != nil {
		if kind != KindInvoice && kind != KindQuote {
			return WrapError(ErrInvalidInput, "validate settings", fmt.Errorf("kind %q has no tax rate", kind))
		}
		if *ds.TaxRate < 0 {
			return WrapError(ErrInvalidInput, "validate settings", errors.New("tax rate must be >= 0"))
		}
	}
	if (ds.TemplateURL != "" || ds.TemplateName != "") && kind != KindWarranty {
		return WrapError(ErrInvalidInput, "validate settings", fmt.Errorf("kind %q does not support templates", kind))
	}
	return nil
}

func Validate(s DocumentsSettings) error {
	for _, kind := range []DocumentKind{KindInvoice, KindDelivery, KindWarranty, KindQuote} {
		ds, _ := s.ForKind(kind)
		if err := ValidateForKind(kind, ds); err != nil {
			return err
		}
	}
	return nil
}

func defaultFields(kind DocumentKind) map[FieldName]bool {
	fields := make(map[FieldName]bool)
	for _, f := range FieldsForKind(kind) {
		fields[f] = true
	}
	return fields
}

// DefaultSettings seeds a fresh profile: every enumerated field visible and
// an 18% tax rate on invoices and quotes.
func DefaultSettings() DocumentsSettings {
	defaultTax := 18.0
	quoteTax := defaultTax
	return DocumentsSettings{
		Invoice: DocumentSettings{
			Fields:  defaultFields(KindInvoice),
			TaxRate: &defaultTax,
		},
		Delivery: DocumentSettings{
			Fields: defaultFields(KindDelivery),
		},
		Warranty: DocumentSettings{
			Fields: defaultFields(KindWarranty),
		},
		Quote: DocumentSettings{
			Fields:  defaultFields(KindQuote),
			TaxRate: &quoteTax,
		},
	}
}
