package donor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type donorRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &donorRepoPG{pool: pool}
}

func (r *donorRepoPG) Upsert(ctx context.Context, donorID uuid.UUID, bloodGroup *string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO donors (id, blood_group, availability)
		VALUES ($1, $2, 'AVAILABLE')
		ON CONFLICT (id) DO UPDATE SET blood_group = COALESCE($2, donors.blood_group)`,
		donorID, bloodGroup,
	)
	if err != nil {
		return fmt.Errorf("upsert donor: %w", err)
	}
	return nil
}

func (r *donorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Donor, error) {
	var d Donor
	err := r.pool.QueryRow(ctx,
		`SELECT id, blood_group, availability FROM donors WHERE id = $1`, id,
	).Scan(&d.ID, &d.BloodGroup, &d.Availability)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *donorRepoPG) Update(ctx context.Context, d *Donor) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE donors SET blood_group = $2, availability = $3 WHERE id = $1`,
		d.ID, d.BloodGroup, d.Availability,
	)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	return nil
}

func (r *donorRepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM donors WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check donor existence: %w", err)
	}
	return exists, nil
}

func (r *donorRepoPG) CountAvailable(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM donors WHERE availability = 'AVAILABLE'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count available donors: %w", err)
	}
	return count, nil
}
