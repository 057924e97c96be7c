package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

type WarrantyRepository struct {
	db *sql.DB
}

func NewWarrantyRepository(db *sql.DB) *WarrantyRepository {
	return &WarrantyRepository{db: db}
}

func (r *WarrantyRepository) Create(ctx context.Context, rec *domain.WarrantyRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO warranties (
	id, warranty_number, customer_name, customer_city, product_category, product_name,
	quantity, price, discount, total, warranty_period, purchase_date, status, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
`,
		rec.ID, rec.WarrantyNumber, rec.CustomerName, rec.CustomerCity, rec.ProductCategory, rec.ProductName,
		rec.Quantity, rec.Price, rec.Discount, rec.Total, string(rec.WarrantyPeriod), rec.PurchaseDate,
		string(rec.Status), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warranty: %w", err)
	}
	return nil
}

func (r *WarrantyRepository) GetByID(ctx context.Context, id string) (*domain.WarrantyRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, warranty_number, customer_name, customer_city, product_category, product_name,
	quantity, price, discount, total, warranty_period, purchase_date, status, created_at, updated_at
FROM warranties
WHERE id = $1
`, id)

	rec, err := scanWarranty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "get warranty", fmt.Errorf("warranty %s", id))
		}
		return nil, fmt.Errorf("scan warranty: %w", err)
	}
	return rec, nil
}

func (r *WarrantyRepository) Update(ctx context.Context, rec *domain.WarrantyRecord) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE warranties
SET customer_name = $2, customer_city = $3, product_category = $4, product_name = $5,
	quantity = $6, price = $7, discount = $8, total = $9, warranty_period = $10,
	purchase_date = $11, updated_at = $12
WHERE id = $1
`,
		rec.ID, rec.CustomerName, rec.CustomerCity, rec.ProductCategory, rec.ProductName,
		rec.Quantity, rec.Price, rec.Discount, rec.Total, string(rec.WarrantyPeriod),
		rec.PurchaseDate, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warranty: %w", err)
	}
	return requireRowsAffected(res, "update warranty", rec.ID)
}

func (r *WarrantyRepository) SetStatus(ctx context.Context, id string, status domain.WarrantyStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE warranties
SET status = $2, updated_at = NOW()
WHERE id = $1
`, id, string(status))
	if err != nil {
		return fmt.Errorf("set warranty status: %w", err)
	}
	return requireRowsAffected(res, "set warranty status", id)
}

func (r *WarrantyRepository) List(ctx context.Context) ([]domain.WarrantyRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, warranty_number, customer_name, customer_city, product_category, product_name,
	quantity, price, discount, total, warranty_period, purchase_date, status, created_at, updated_at
FROM warranties
ORDER BY created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list warranties: %w", err)
	}
	defer rows.Close()

	var out []domain.WarrantyRecord
	for rows.Next() {
		rec, err := scanWarranty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warranty row: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate warranties: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWarranty(row rowScanner) (*domain.WarrantyRecord, error) {
	var rec domain.WarrantyRecord
	var period, status string
	err := row.Scan(
		&rec.ID, &rec.WarrantyNumber, &rec.CustomerName, &rec.CustomerCity, &rec.ProductCategory, &rec.ProductName,
		&rec.Quantity, &rec.Price, &rec.Discount, &rec.Total, &period, &rec.PurchaseDate,
		&status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.WarrantyPeriod = domain.WarrantyPeriod(period)
	rec.Status = domain.WarrantyStatus(status)
	return &rec, nil
}

func requireRowsAffected(res sql.Result, op, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrNotFound, op, fmt.Errorf("no row for %s", id))
	}
	return nil
}
