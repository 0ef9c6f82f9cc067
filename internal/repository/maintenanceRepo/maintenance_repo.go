package maintenanceRepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
)

type MaintenanceRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *MaintenanceRepository {
	return &MaintenanceRepository{pool: pool}
}

const reportColumns = `id, equipment_id, vehicle_id, issue, remarks, priority, status, attachment_urls, reported_at, repaired_at`

func scanReport(row pgx.Row) (*asset.MaintenanceReport, error) {
	var m asset.MaintenanceReport
	err := row.Scan(&m.ID, &m.EquipmentID, &m.VehicleID, &m.Issue, &m.Remarks,
		&m.Priority, &m.Status, &m.AttachmentURLs, &m.ReportedAt, &m.RepairedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, m *asset.MaintenanceReport) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO maintenance_reports (id, equipment_id, vehicle_id, issue, remarks, priority, status, attachment_urls, reported_at, repaired_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.EquipmentID, m.VehicleID, m.Issue, m.Remarks, m.Priority,
		m.Status, m.AttachmentURLs, m.ReportedAt, m.RepairedAt)
	return err
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*asset.MaintenanceReport, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM maintenance_reports WHERE id = $1`, id)
	return scanReport(row)
}

// List returns reports newest first, optionally filtered by status.
func (r *MaintenanceRepository) List(ctx context.Context, status asset.ReportStatus) ([]*asset.MaintenanceReport, error) {
	query := `SELECT ` + reportColumns + ` FROM maintenance_reports ORDER BY reported_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT ` + reportColumns + ` FROM maintenance_reports WHERE status = $1 ORDER BY reported_at DESC`
		args = append(args, status)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*asset.MaintenanceReport
	for rows.Next() {
		m, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *MaintenanceRepository) Update(ctx context.Context, m *asset.MaintenanceReport) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE maintenance_reports
		 SET issue = $1, remarks = $2, priority = $3, status = $4,
		     attachment_urls = $5, repaired_at = $6
		 WHERE id = $7`,
		m.Issue, m.Remarks, m.Priority, m.Status, m.AttachmentURLs, m.RepairedAt, m.ID)
	return err
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM maintenance_reports WHERE id = $1`, id)
	return err
}
