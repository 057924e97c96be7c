package pdf

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

func sampleRecord() *domain.WarrantyRecord {
	purchase, _ := time.Parse("2006-01-02", "2025-03-14")
	return &domain.WarrantyRecord{
		ID:              "w1",
		WarrantyNumber:  "WAR-00042",
		CustomerName:    "Amina Berrada",
		CustomerCity:    "Casablanca",
		ProductCategory: "Chairs",
		ProductName:     "Grace Accent Chair",
		Quantity:        2,
		Price:           12799,
		Discount:        500,
		Total:           25098,
		WarrantyPeriod:  domain.PeriodTwoYears,
		PurchaseDate:    purchase,
	}
}

func warrantySettings() domain.DocumentSettings {
	return domain.DocumentSettings{Fields: map[domain.FieldName]bool{
		domain.FieldWarrantyNumber:  true,
		domain.FieldCustomerName:    true,
		domain.FieldProductDetails:  true,
		domain.FieldWarrantyPeriod:  true,
		domain.FieldPurchaseDate:    true,
		domain.FieldTermsConditions: true,
	}}
}

func collectText(doc document) string {
	var b strings.Builder
	for _, p := range doc.Pages {
		for _, el := range p.Elements {
			b.WriteString(el.Text)
			b.WriteString("\n")
			for _, item := range el.Items {
				b.WriteString(item)
				b.WriteString("\n")
			}
			for _, row := range el.Rows {
				b.WriteString(strings.Join(row, "|"))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func TestBuildCertificateIncludesVisibleFields(t *testing.T) {
	doc := buildCertificate(sampleRecord(), warrantySettings())
	text := collectText(doc)

	for _, want := range []string{
		"Certificate No: WAR-00042",
		"Customer: Amina Berrada",
		"City: Casablanca",
		"Grace Accent Chair|Chairs|2|12799.00 DH|500.00 DH|25098.00 DH",
		"Warranty period: 2 years",
		"Purchase date: 14 March 2025",
		"Terms and Conditions",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("certificate missing %q\n%s", want, text)
		}
	}
}

func TestBuildCertificateOmitsHiddenFields(t *testing.T) {
	settings := warrantySettings()
	settings.Fields[domain.FieldWarrantyNumber] = false
	settings.Fields[domain.FieldTermsConditions] = false

	text := collectText(buildCertificate(sampleRecord(), settings))
	if strings.Contains(text, "Certificate No:") {
		t.Fatalf("hidden warranty number leaked into output")
	}
	if strings.Contains(text, "Terms and Conditions") {
		t.Fatalf("hidden terms leaked into output")
	}
	if !strings.Contains(text, "Customer: Amina Berrada") {
		t.Fatalf("visible fields must survive")
	}
}

func TestRenderProducesPDFBytes(t *testing.T) {
	r := NewCertificateRenderer(nil)
	data, err := r.Render(context.Background(), sampleRecord(), warrantySettings())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected PDF bytes")
	}
	if !strings.HasPrefix(string(data[:5]), "%PDF-") {
		t.Fatalf("output does not look like a PDF: %q", data[:5])
	}
}

func TestRenderTemplateWithoutURLReportsNoTemplate(t *testing.T) {
	r := NewCertificateRenderer(nil)
	settings := warrantySettings()
	settings.TemplateName = "classic"

	_, err := r.Render(context.Background(), sampleRecord(), settings)
	if !domain.IsKind(err, domain.ErrNoTemplate) {
		t.Fatalf("expected ErrNoTemplate, got %v", err)
	}
}

func TestFillPlaceholdersSubstitutesAndEscapes(t *testing.T) {
	template := []byte(`{"text": "No {{warrantyNumber}} for {{customerName}}", "keep": "{{unknown}}"}`)
	out := string(fillPlaceholders(template, map[string]string{
		"warrantyNumber": "WAR-00042",
		"customerName":   `Amina "Mina" Berrada`,
	}))

	if !strings.Contains(out, "No WAR-00042 for") {
		t.Fatalf("placeholder not substituted: %s", out)
	}
	if !strings.Contains(out, `Amina \"Mina\" Berrada`) {
		t.Fatalf("quotes not escaped: %s", out)
	}
	if !strings.Contains(out, "{{unknown}}") {
		t.Fatalf("unknown markers must stay visible: %s", out)
	}
}
