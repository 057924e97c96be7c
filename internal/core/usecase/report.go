package usecase

import (
	"context"
	"fmt"

	"github.com/maestrofurniture/docgen/internal/core/ports"
)

// ReportUseCase builds downloadable exports of the warranty register.
type ReportUseCase struct {
	warranties ports.WarrantyRepository
	exporter   ports.ReportExporter
}

func NewReportUseCase(warranties ports.WarrantyRepository, exporter ports.ReportExporter) *ReportUseCase {
	return &ReportUseCase{warranties: warranties, exporter: exporter}
}

func (uc *ReportUseCase) WarrantyRegisterXLSX(ctx context.Context) ([]byte, error) {
	records, err := uc.warranties.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list warranty records: %w", err)
	}
	data, err := uc.exporter.WarrantyRegister(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("export warranty register: %w", err)
	}
	return data, nil
}
