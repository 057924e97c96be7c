package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

const registerSheet = "Warranties"

// Exporter writes the warranty register as an XLSX workbook, one row per
// record, newest first as delivered by the repository.
type Exporter struct{}

func New() Exporter {
	return Exporter{}
}

func (Exporter) WarrantyRegister(_ context.Context, records []domain.WarrantyRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(registerSheet)
	if err != nil {
		return nil, fmt.Errorf("create register sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	header := []any{
		"Warranty Number", "Customer", "City", "Category", "Product",
		"Quantity", "Unit Price", "Discount", "Total", "Period", "Purchase Date", "Status",
	}
	if err := f.SetSheetRow(registerSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, rec := range records {
		row := []any{
			rec.WarrantyNumber, rec.CustomerName, rec.CustomerCity, rec.ProductCategory, rec.ProductName,
			rec.Quantity, rec.Price, rec.Discount, rec.Total, string(rec.WarrantyPeriod),
			rec.PurchaseDate.Format("2006-01-02"), string(rec.Status),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write register row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
