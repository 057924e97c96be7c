package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/lvillar/gofpdf/doctpl"

	"github.com/maestrofurniture/docgen/internal/core/domain"
	"github.com/maestrofurniture/docgen/internal/core/ports"
)

const dateLayout = "2 January 2006"

// CertificateRenderer turns a warranty record into PDF bytes. Two strategies
// exist: the generated layout built here, and the legacy template-fill path
// used when the settings reference an uploaded template.
type CertificateRenderer struct {
	templates ports.TemplateSource
}

func NewCertificateRenderer(templates ports.TemplateSource) *CertificateRenderer {
	return &CertificateRenderer{templates: templates}
}

func (r *CertificateRenderer) Render(ctx context.Context, rec *domain.WarrantyRecord, settings domain.DocumentSettings) ([]byte, error) {
	if settings.TemplateName != "" || settings.TemplateURL != "" {
		return r.renderFromTemplate(ctx, rec, settings)
	}

	raw, err := json.Marshal(buildCertificate(rec, settings))
	if err != nil {
		return nil, fmt.Errorf("marshal document description: %w", err)
	}
	var buf bytes.Buffer
	if err := doctpl.Render(&buf, raw); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *CertificateRenderer) renderFromTemplate(ctx context.Context, rec *domain.WarrantyRecord, settings domain.DocumentSettings) ([]byte, error) {
	if settings.TemplateURL == "" {
		return nil, domain.WrapError(domain.ErrNoTemplate, "render certificate",
			fmt.Errorf("template %q has no source url", settings.TemplateName))
	}
	if r.templates == nil {
		return nil, domain.WrapError(domain.ErrNoTemplate, "render certificate",
			fmt.Errorf("no template source configured"))
	}

	tpl, err := r.templates.Fetch(ctx, settings.TemplateURL)
	if err != nil {
		return nil, fmt.Errorf("fetch template: %w", err)
	}

	filled := fillPlaceholders(tpl, certificateValues(rec))
	var buf bytes.Buffer
	if err := doctpl.Render(&buf, filled); err != nil {
		return nil, fmt.Errorf("render templated certificate: %w", err)
	}
	return buf.Bytes(), nil
}

// buildCertificate lays out the generated certificate. Hidden fields are
// left out entirely; the remaining blocks keep their relative order.
func buildCertificate(rec *domain.WarrantyRecord, settings domain.DocumentSettings) document {
	elements := []element{
		{Type: "heading", Text: "Warranty Certificate", Level: 1},
	}

	if settings.Visible(domain.FieldWarrantyNumber) {
		elements = append(elements, element{
			Type: "paragraph", Text: "Certificate No: " + rec.WarrantyNumber,
			Align: "R", Font: &font{Style: "B"},
		})
	}
	elements = append(elements, element{Type: "hr"})

	if settings.Visible(domain.FieldCustomerName) {
		customer := "Customer: " + rec.CustomerName
		if rec.CustomerCity != "" {
			customer += "\nCity: " + rec.CustomerCity
		}
		elements = append(elements, element{Type: "paragraph", Text: customer})
	}

	if settings.Visible(domain.FieldProductDetails) {
		elements = append(elements,
			element{Type: "spacer", SpacerHeight: 4},
			element{
				Type: "table",
				Columns: []column{
					{Header: "Product", Width: 55},
					{Header: "Category", Width: 35},
					{Header: "Qty", Width: 15, Align: "C"},
					{Header: "Unit Price", Width: 28, Align: "R"},
					{Header: "Discount", Width: 25, Align: "R"},
					{Header: "Total", Width: 28, Align: "R"},
				},
				Rows: [][]string{{
					rec.ProductName,
					rec.ProductCategory,
					fmt.Sprintf("%d", rec.Quantity),
					formatCurrency(rec.Price),
					formatCurrency(rec.Discount),
					formatCurrency(rec.Total),
				}},
			},
		)
	}

	var coverage []string
	if settings.Visible(domain.FieldWarrantyPeriod) {
		coverage = append(coverage, "Warranty period: "+string(rec.WarrantyPeriod))
	}
	if settings.Visible(domain.FieldPurchaseDate) {
		coverage = append(coverage, "Purchase date: "+rec.PurchaseDate.Format(dateLayout))
	}
	if len(coverage) > 0 {
		elements = append(elements,
			element{Type: "spacer", SpacerHeight: 6},
			element{Type: "list", Items: coverage},
		)
	}

	if settings.Visible(domain.FieldTermsConditions) {
		elements = append(elements,
			element{Type: "hr"},
			element{Type: "heading", Text: "Terms and Conditions", Level: 3},
			element{Type: "list", Items: []string{
				"Coverage applies to manufacturing defects only.",
				"The certificate must be presented with the purchase receipt.",
				"Damage caused by misuse or unauthorized repair is not covered.",
			}},
		)
	}

	return document{
		Title:    "Warranty Certificate " + rec.WarrantyNumber,
		Author:   "Maestro Furniture",
		PageSize: "A4",
		Margin:   &margin{Top: 20, Right: 15, Bottom: 20, Left: 15},
		Font:     &font{Family: "Helvetica", Size: 11},
		Header:   &banner{Text: "Maestro Furniture", Align: "R"},
		Footer:   &banner{Text: "Page {page}", Align: "C"},
		Pages:    []page{{Elements: elements}},
	}
}

// certificateValues enumerates the placeholder values the template-fill
// strategy substitutes.
func certificateValues(rec *domain.WarrantyRecord) map[string]string {
	return map[string]string{
		"warrantyNumber":  rec.WarrantyNumber,
		"customerName":    rec.CustomerName,
		"customerCity":    rec.CustomerCity,
		"productCategory": rec.ProductCategory,
		"productName":     rec.ProductName,
		"quantity":        fmt.Sprintf("%d", rec.Quantity),
		"price":           fmt.Sprintf("%.2f", rec.Price),
		"discount":        fmt.Sprintf("%.2f", rec.Discount),
		"total":           fmt.Sprintf("%.2f", rec.Total),
		"warrantyPeriod":  string(rec.WarrantyPeriod),
		"purchaseDate":    rec.PurchaseDate.Format(dateLayout),
	}
}

func formatCurrency(v float64) string {
	return fmt.Sprintf("%.2f DH", v)
}
