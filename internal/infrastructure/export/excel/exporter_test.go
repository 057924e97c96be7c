package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

func TestWarrantyRegisterRoundTrips(t *testing.T) {
	purchase, _ := time.Parse("2006-01-02", "2025-03-14")
	records := []domain.WarrantyRecord{{
		WarrantyNumber:  "WAR-00042",
		CustomerName:    "Amina Berrada",
		CustomerCity:    "Casablanca",
		ProductCategory: "Chairs",
		ProductName:     "Grace Accent Chair",
		Quantity:        2,
		Price:           12799,
		Total:           25598,
		WarrantyPeriod:  domain.PeriodTwoYears,
		PurchaseDate:    purchase,
		Status:          domain.WarrantyGenerated,
	}}

	data, err := New().WarrantyRegister(context.Background(), records)
	if err != nil {
		t.Fatalf("WarrantyRegister() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(registerSheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one record", len(rows))
	}
	if rows[0][0] != "Warranty Number" {
		t.Fatalf("header = %q", rows[0][0])
	}
	if rows[1][0] != "WAR-00042" || rows[1][4] != "Grace Accent Chair" {
		t.Fatalf("unexpected record row: %v", rows[1])
	}
}

func TestWarrantyRegisterHandlesEmptyList(t *testing.T) {
	data, err := New().WarrantyRegister(context.Background(), nil)
	if err != nil {
		t.Fatalf("WarrantyRegister() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(registerSheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
}
