package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

type ArtifactRepository struct {
	db *sql.DB
}

func NewArtifactRepository(db *sql.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

func (r *ArtifactRepository) Create(ctx context.Context, art *domain.Artifact) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO artifacts (
	id, warranty_id, filename, storage_path, status, page_count, byte_size, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		art.ID, art.WarrantyID, art.Filename, art.StoragePath, string(art.Status),
		art.PageCount, art.ByteSize, art.Error, art.CreatedAt, art.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert artifact: %w", err)
	}
	return nil
}

func (r *ArtifactRepository) GetByID(ctx context.Context, id string) (*domain.Artifact, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, warranty_id, filename, storage_path, status, page_count, byte_size, error_message, created_at, updated_at
FROM artifacts
WHERE id = $1
`, id)

	art, err := scanArtifact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get artifact", fmt.Errorf("artifact %s", id))
		}
		return nil, fmt.Errorf("scan artifact: %w", err)
	}
	return art, nil
}

// LatestReady resolves the newest servable artifact of a record.
func (r *ArtifactRepository) LatestReady(ctx context.Context, warrantyID string) (*domain.Artifact, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, warranty_id, filename, storage_path, status, page_count, byte_size, error_message, created_at, updated_at
FROM artifacts
WHERE warranty_id = $1 AND status = $2
ORDER BY created_at DESC
LIMIT 1
`, warrantyID, string(domain.ArtifactReady))

	art, err := scanArtifact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "latest ready artifact", fmt.Errorf("warranty %s", warrantyID))
		}
		return nil, fmt.Errorf("scan artifact: %w", err)
	}
	return art, nil
}

func (r *ArtifactRepository) HasOutstanding(ctx context.Context, warrantyID string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT EXISTS (
	SELECT 1 FROM artifacts WHERE warranty_id = $1 AND status IN ($2, $3)
)
`, warrantyID, string(domain.ArtifactPending), string(domain.ArtifactRendering))

	var outstanding bool
	if err := row.Scan(&outstanding); err != nil {
		return false, fmt.Errorf("check outstanding artifacts: %w", err)
	}
	return outstanding, nil
}

func (r *ArtifactRepository) MarkRendering(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE artifacts
SET status = $2, updated_at = NOW()
WHERE id = $1
`, id, string(domain.ArtifactRendering))
	if err != nil {
		return fmt.Errorf("mark artifact rendering: %w", err)
	}
	return requireRowsAffected(res, "mark artifact rendering", id)
}

func (r *ArtifactRepository) MarkReady(ctx context.Context, id string, pageCount int, byteSize int64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE artifacts
SET status = $2, page_count = $3, byte_size = $4, error_message = '', updated_at = NOW()
WHERE id = $1
`, id, string(domain.ArtifactReady), pageCount, byteSize)
	if err != nil {
		return fmt.Errorf("mark artifact ready: %w", err)
	}
	return requireRowsAffected(res, "mark artifact ready", id)
}

func (r *ArtifactRepository) MarkFailed(ctx context.Context, id string, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE artifacts
SET status = $2, error_message = $3, updated_at = NOW()
WHERE id = $1
`, id, string(domain.ArtifactFailed), errMessage)
	if err != nil {
		return fmt.Errorf("mark artifact failed: %w", err)
	}
	return requireRowsAffected(res, "mark artifact failed", id)
}

// SupersedeReady invalidates every other ready artifact of the record.
// Zero affected rows is fine; the first render has nothing to supersede.
func (r *ArtifactRepository) SupersedeReady(ctx context.Context, warrantyID, exceptID string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE artifacts
SET status = $3, updated_at = NOW()
WHERE warranty_id = $1 AND id <> $2 AND status = $4
`, warrantyID, exceptID, string(domain.ArtifactSuperseded), string(domain.ArtifactReady))
	if err != nil {
		return fmt.Errorf("supersede artifacts: %w", err)
	}
	return nil
}

func scanArtifact(row rowScanner) (*domain.Artifact, error) {
	var art domain.Artifact
	var status string
	err := row.Scan(
		&art.ID, &art.WarrantyID, &art.Filename, &art.StoragePath, &status,
		&art.PageCount, &art.ByteSize, &art.Error, &art.CreatedAt, &art.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	art.Status = domain.ArtifactStatus(status)
	return &art, nil
}
