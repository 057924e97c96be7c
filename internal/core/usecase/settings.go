package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/maestrofurniture/docgen/internal/core/domain"
	"github.com/maestrofurniture/docgen/internal/core/ports"
)

// SettingsUseCase owns the single shared settings view for the session and
// keeps it in sync with the persisted store. Every mutation is written
// through synchronously; if the write fails the in-memory value is kept so
// the session keeps working, and the error is surfaced to the caller.
type SettingsUseCase struct {
	store ports.SettingsStore

	mu      sync.Mutex
	current domain.DocumentsSettings
}

func NewSettingsUseCase(ctx context.Context, store ports.SettingsStore) (*SettingsUseCase, error) {
	current, ok, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		current = domain.DefaultSettings()
		slog.Info("settings_defaults_seeded")
	}
	return &SettingsUseCase{store: store, current: current}, nil
}

func (uc *SettingsUseCase) Get(_ context.Context) (domain.DocumentsSettings, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.current, nil
}

func (uc *SettingsUseCase) UpdateAll(ctx context.Context, settings domain.DocumentsSettings) error {
	if err := domain.Validate(settings); err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.current = settings
	if err := uc.store.Save(ctx, settings); err != nil {
		slog.Error("settings_persist_failed", "error", err)
		return domain.WrapError(domain.ErrTemporary, "persist settings", err)
	}
	slog.Info("settings_updated")
	return nil
}

func (uc *SettingsUseCase) UpdateOne(ctx context.Context, kind domain.DocumentKind, settings domain.DocumentSettings) error {
	if err := domain.ValidateForKind(kind, settings); err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	merged := uc.current
	if err := merged.SetKind(kind, settings); err != nil {
		return err
	}
	uc.current = merged
	if err := uc.store.Save(ctx, merged); err != nil {
		slog.Error("settings_persist_failed", "kind", string(kind), "error", err)
		return domain.WrapError(domain.ErrTemporary, "persist settings", err)
	}
	slog.Info("settings_updated", "kind", string(kind))
	return nil
}

// Visibility resolves the rendered visibility map for a kind over its closed
// field enumeration. Absent keys resolve to hidden.
func (uc *SettingsUseCase) Visibility(_ context.Context, kind domain.DocumentKind) (map[domain.FieldName]bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	ds, err := uc.current.ForKind(kind)
	if err != nil {
		return nil, err
	}
	visible := make(map[domain.FieldName]bool, len(domain.FieldsForKind(kind)))
	for _, f := range domain.FieldsForKind(kind) {
		visible[f] = ds.Visible(f)
	}
	return visible, nil
}

func (uc *SettingsUseCase) ForKind(_ context.Context, kind domain.DocumentKind) (domain.DocumentSettings, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.current.ForKind(kind)
}
