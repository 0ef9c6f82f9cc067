// Package referenceRepo persists the location -> client -> project chain
// that equipment and vehicles hang off.
package referenceRepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/model/asset"
)

type ReferenceRepository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

func (r *ReferenceRepository) CreateLocation(ctx context.Context, l *asset.Location) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO locations (id, address, created_at) VALUES ($1, $2, $3)`,
		l.ID, l.Address, l.CreatedAt)
	return err
}

func (r *ReferenceRepository) GetLocationByID(ctx context.Context, id uuid.UUID) (*asset.Location, error) {
	var l asset.Location
	err := r.pool.QueryRow(ctx,
		`SELECT id, address, created_at FROM locations WHERE id = $1`, id).
		Scan(&l.ID, &l.Address, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ReferenceRepository) ListLocations(ctx context.Context) ([]*asset.Location, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, address, created_at FROM locations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*asset.Location
	for rows.Next() {
		var l asset.Location
		if err := rows.Scan(&l.ID, &l.Address, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &l)
	}
	return result, rows.Err()
}

func (r *ReferenceRepository) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	return err
}

func (r *ReferenceRepository) CreateClient(ctx context.Context, c *asset.Client) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO clients (id, name, location_id, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.LocationID, c.CreatedAt)
	return err
}

func (r *ReferenceRepository) GetClientByID(ctx context.Context, id uuid.UUID) (*asset.Client, error) {
	var c asset.Client
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, location_id, created_at FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.LocationID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ReferenceRepository) ListClients(ctx context.Context) ([]*asset.Client, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, location_id, created_at FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*asset.Client
	for rows.Next() {
		var c asset.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.LocationID, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

func (r *ReferenceRepository) DeleteClient(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}

func (r *ReferenceRepository) CreateProject(ctx context.Context, p *asset.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, name, client_id, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, p.ClientID, p.CreatedAt)
	return err
}

func (r *ReferenceRepository) GetProjectByID(ctx context.Context, id uuid.UUID) (*asset.Project, error) {
	var p asset.Project
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, client_id, created_at FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.ClientID, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ReferenceRepository) ListProjects(ctx context.Context) ([]*asset.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, client_id, created_at FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*asset.Project
	for rows.Next() {
		var p asset.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.ClientID, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (r *ReferenceRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
