package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

// FileStore persists document settings as one JSON file. A missing or
// unreadable file reports ok=false so the caller can fall back to defaults
// instead of failing startup.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = "./data/document_settings.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(_ context.Context) (domain.DocumentsSettings, bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DocumentsSettings{}, false, nil
		}
		return domain.DocumentsSettings{}, false, fmt.Errorf("read settings file: %w", err)
	}

	var out domain.DocumentsSettings
	if err := json.Unmarshal(raw, &out); err != nil {
		// A corrupt file must not brick the dashboard.
		slog.Warn("settings_file_corrupt", "path", s.path, "error", err)
		return domain.DocumentsSettings{}, false, nil
	}
	return out, true, nil
}

// Save writes through a temp file and renames, so a crash mid-write never
// leaves a half-written settings file behind.
func (s *FileStore) Save(_ context.Context, settings domain.DocumentsSettings) error {
	raw, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write settings temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
