package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fieldops-backend/internal/models"
)

const assetColumns = `id, type, brand, size, serial_number, purchase_date, cost, status,
	linear_feet, inches_drilled, hole_count, operator_id, retired_reason, retired_at, retired_photo, created_at`

func scanAsset(row rowScanner) (*models.Asset, error) {
	var a models.Asset
	err := row.Scan(&a.ID, &a.Type, &a.Brand, &a.Size, &a.SerialNumber, &a.PurchaseDate, &a.Cost, &a.Status,
		&a.LinearFeet, &a.InchesDrilled, &a.HoleCount, &a.OperatorID, &a.RetiredReason, &a.RetiredAt,
		&a.RetiredPhoto, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (d *DatabaseClient) CreateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	row := d.db.QueryRowContext(ctx, `
		INSERT INTO assets (id, type, brand, size, serial_number, purchase_date, cost, operator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+assetColumns,
		a.ID, a.Type, a.Brand, a.Size, a.SerialNumber, a.PurchaseDate, a.Cost, a.OperatorID)
	created, err := scanAsset(row)
	if err != nil {
		return nil, classify(err, "create asset")
	}
	return created, nil
}

func (d *DatabaseClient) GetAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	a, err := scanAsset(d.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, "get asset")
	}
	return a, nil
}

func (d *DatabaseClient) ListAssets(ctx context.Context, filter models.AssetFilter) ([]models.Asset, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.OperatorID.Valid {
		args = append(args, filter.OperatorID.UUID)
		where = append(where, fmt.Sprintf("operator_id = $%d", len(args)))
	}
	query := `SELECT ` + assetColumns + ` FROM assets`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY brand ASC, created_at ASC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

// AddAssetUsage increments usage counters on an active asset. It reports
// false without error when the asset is retired, leaving counters frozen.
func (d *DatabaseClient) AddAssetUsage(ctx context.Context, id uuid.UUID, u models.AssetUsage) (bool, error) {
	res, err := d.db.ExecContext(ctx, `
		UPDATE assets
		SET linear_feet = linear_feet + $1,
			inches_drilled = inches_drilled + $2,
			hole_count = hole_count + $3
		WHERE id = $4 AND status = 'active'
	`, u.LinearFeet, u.InchesDrilled, u.Holes, id)
	if err != nil {
		return false, classify(err, "add asset usage")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to add asset usage: %w", err)
	}
	return n > 0, nil
}

// RetireAsset moves an active asset to retired. Retiring twice is a conflict.
func (d *DatabaseClient) RetireAsset(ctx context.Context, id uuid.UUID, reason, photo string, at time.Time) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE assets
		SET status = 'retired', retired_reason = $1, retired_photo = $2, retired_at = $3
		WHERE id = $4 AND status = 'active'
	`, reason, photo, at, id)
	if err != nil {
		return classify(err, "retire asset")
	}
	return expectOne(res, "retire asset")
}
