package assetRepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
)

type AssetRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

const equipmentColumns = `id, brand, model, type, owner, status, remarks, project_id, inspection_date, equipment_parts, created_at, updated_at`

func scanEquipment(row pgx.Row) (*asset.Equipment, error) {
	var e asset.Equipment
	err := row.Scan(&e.ID, &e.Brand, &e.Model, &e.Type, &e.Owner, &e.Status,
		&e.Remarks, &e.ProjectID, &e.InspectionDate, &e.PartsColumn, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *AssetRepository) CreateEquipment(ctx context.Context, e *asset.Equipment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO equipment (id, brand, model, type, owner, status, remarks, project_id, inspection_date, equipment_parts, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.Brand, e.Model, e.Type, e.Owner, e.Status, e.Remarks,
		e.ProjectID, e.InspectionDate, e.PartsColumn, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *AssetRepository) GetEquipmentByID(ctx context.Context, id uuid.UUID) (*asset.Equipment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id)
	return scanEquipment(row)
}

func (r *AssetRepository) ListEquipment(ctx context.Context) ([]*asset.Equipment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+equipmentColumns+` FROM equipment ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*asset.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *AssetRepository) UpdateEquipment(ctx context.Context, e *asset.Equipment) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE equipment
		 SET brand = $1, model = $2, type = $3, owner = $4, status = $5,
		     remarks = $6, project_id = $7, inspection_date = $8, updated_at = now()
		 WHERE id = $9`,
		e.Brand, e.Model, e.Type, e.Owner, e.Status, e.Remarks, e.ProjectID, e.InspectionDate, e.ID)
	return err
}

// UpdateEquipmentParts writes the reconciled tree column. The column layout
// (single JSON string inside a text[]) is a schema quirk preserved on write.
func (r *AssetRepository) UpdateEquipmentParts(ctx context.Context, id uuid.UUID, column []string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE equipment SET equipment_parts = $1, updated_at = now() WHERE id = $2`,
		column, id)
	return err
}

func (r *AssetRepository) DeleteEquipment(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	return err
}

const vehicleColumns = `id, brand, model, type, plate_number, owner, status, project_id, vehicle_parts, created_at, updated_at`

func scanVehicle(row pgx.Row) (*asset.Vehicle, error) {
	var v asset.Vehicle
	err := row.Scan(&v.ID, &v.Brand, &v.Model, &v.Type, &v.PlateNumber, &v.Owner,
		&v.Status, &v.ProjectID, &v.PartsColumn, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *AssetRepository) CreateVehicle(ctx context.Context, v *asset.Vehicle) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO vehicles (id, brand, model, type, plate_number, owner, status, project_id, vehicle_parts, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID, v.Brand, v.Model, v.Type, v.PlateNumber, v.Owner, v.Status,
		v.ProjectID, v.PartsColumn, v.CreatedAt, v.UpdatedAt)
	return err
}

func (r *AssetRepository) GetVehicleByID(ctx context.Context, id uuid.UUID) (*asset.Vehicle, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	return scanVehicle(row)
}

func (r *AssetRepository) ListVehicles(ctx context.Context) ([]*asset.Vehicle, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*asset.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *AssetRepository) UpdateVehicle(ctx context.Context, v *asset.Vehicle) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE vehicles
		 SET brand = $1, model = $2, type = $3, plate_number = $4, owner = $5,
		     status = $6, project_id = $7, updated_at = now()
		 WHERE id = $8`,
		v.Brand, v.Model, v.Type, v.PlateNumber, v.Owner, v.Status, v.ProjectID, v.ID)
	return err
}

func (r *AssetRepository) UpdateVehicleParts(ctx context.Context, id uuid.UUID, column []string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE vehicles SET vehicle_parts = $1, updated_at = now() WHERE id = $2`,
		column, id)
	return err
}

func (r *AssetRepository) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	return err
}
