package bootstrap

import (
	"context"
	"fmt"

	"github.com/maestrofurniture/docgen/internal/config"
	"github.com/maestrofurniture/docgen/internal/core/ports"
	"github.com/maestrofurniture/docgen/internal/core/usecase"
	"github.com/maestrofurniture/docgen/internal/infrastructure/catalog"
	"github.com/maestrofurniture/docgen/internal/infrastructure/export/excel"
	"github.com/maestrofurniture/docgen/internal/infrastructure/pdf"
	"github.com/maestrofurniture/docgen/internal/infrastructure/pdfinfo"
	"github.com/maestrofurniture/docgen/internal/infrastructure/queue/nats"
	"github.com/maestrofurniture/docgen/internal/infrastructure/repository/postgres"
	"github.com/maestrofurniture/docgen/internal/infrastructure/resilience"
	"github.com/maestrofurniture/docgen/internal/infrastructure/settings"
	"github.com/maestrofurniture/docgen/internal/infrastructure/storage/localfs"
	"github.com/maestrofurniture/docgen/internal/infrastructure/template"
)

// App wires the shared dependency graph used by both the api and the worker
// binaries.
type App struct {
	Config config.Config

	Queue        ports.RenderQueue
	Settings     ports.SettingsService
	Warranties   ports.WarrantyService
	Certificates ports.CertificateService
	Artifacts    ports.ArtifactService
	Drafts       ports.DraftService
	Reports      ports.ReportService
	Catalog      ports.Catalog

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	warrantyRepo := postgres.NewWarrantyRepository(db)
	artifactRepo := postgres.NewArtifactRepository(db)
	draftRepo := postgres.NewDraftRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init artifact storage: %w", err)
	}

	settingsStore, err := settings.NewFileStore(cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("init settings store: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    cfg.RetryMaxAttempts,
		RetryInitialBackoff: cfg.RetryInitialBackoff,
		RetryMaxBackoff:     cfg.RetryMaxBackoff,
		BreakerEnabled:      cfg.BreakerEnabled,
		BreakerOpenTimeout:  cfg.BreakerOpenTimeout,
	})

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init render queue: %w", err)
	}

	products := catalog.NewStatic()
	templates := template.NewSource(executor)
	renderer := pdf.NewCertificateRenderer(templates)
	inspector := pdfinfo.New()
	exporter := excel.New()

	settingsUC, err := usecase.NewSettingsUseCase(ctx, settingsStore)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, fmt.Errorf("init settings: %w", err)
	}
	warrantyUC := usecase.NewWarrantyUseCase(warrantyRepo, products)
	certificateUC := usecase.NewCertificateUseCase(
		warrantyRepo, artifactRepo, queue, renderer, settingsUC, storage, inspector,
	)
	artifactUC := usecase.NewArtifactUseCase(artifactRepo, storage, certificateUC)
	draftUC := usecase.NewDraftUseCase(draftRepo, settingsUC)
	reportUC := usecase.NewReportUseCase(warrantyRepo, exporter)

	return &App{
		Config: cfg,

		Queue:        queue,
		Settings:     settingsUC,
		Warranties:   warrantyUC,
		Certificates: certificateUC,
		Artifacts:    artifactUC,
		Drafts:       draftUC,
		Reports:      reportUC,
		Catalog:      products,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
