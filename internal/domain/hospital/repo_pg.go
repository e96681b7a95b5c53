package hospital

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chikitsa/chikitsa/pkg/pagination"
)

const hospitalColumns = `id, name, city, is_approved, created_by_user_id, created_at`

type hospitalRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &hospitalRepoPG{pool: pool}
}

func (r *hospitalRepoPG) CreateForUser(ctx context.Context, name string, city *string, createdBy uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hospitals (id, name, city, created_by_user_id)
		VALUES ($1, $2, $3, $4)`,
		id, name, city, createdBy,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create hospital: %w", err)
	}
	return id, nil
}

func (r *hospitalRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	var h Hospital
	err := r.pool.QueryRow(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE id = $1`, id,
	).Scan(&h.ID, &h.Name, &h.City, &h.IsApproved, &h.CreatedByUserID, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hospitalRepoPG) List(ctx context.Context, p pagination.Params) ([]Hospital, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM hospitals`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count hospitals: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals ORDER BY name ASC LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list hospitals: %w", err)
	}
	defer rows.Close()

	hospitals := make([]Hospital, 0, p.Limit)
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.City, &h.IsApproved, &h.CreatedByUserID, &h.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan hospital: %w", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate hospitals: %w", err)
	}
	return hospitals, total, nil
}

func (r *hospitalRepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM hospitals WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check hospital existence: %w", err)
	}
	return exists, nil
}
