package blood

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// requestReadQuery is the shared read model: the request row, the hospital
// display fields, and the responder count aggregated over every response row
// regardless of its sub-status.
const requestReadQuery = `
	SELECT
		br.id,
		br.patient_name_or_code,
		br.blood_group_required,
		br.urgency_level,
		br.needed_by,
		br.location_description,
		br.contact_person_name,
		br.contact_phone,
		br.status,
		br.notes,
		br.created_at,
		h.id AS hospital_id,
		h.name AS hospital_name,
		COUNT(bdr.id) AS responders_count
	FROM blood_requests br
	LEFT JOIN hospitals h ON br.hospital_id = h.id
	LEFT JOIN blood_donor_responses bdr ON br.id = bdr.blood_request_id`

const requestReadGroupBy = ` GROUP BY br.id, h.id, h.name`

type requestRepoPG struct {
	pool *pgxpool.Pool
}

func NewRequestRepo(pool *pgxpool.Pool) RequestRepository {
	return &requestRepoPG{pool: pool}
}

func (r *requestRepoPG) Create(ctx context.Context, req *Request) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blood_requests (
			id, hospital_id, patient_name_or_code, blood_group_required,
			urgency_level, needed_by, location_description,
			contact_person_name, contact_phone, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		req.ID, req.HospitalID, req.PatientNameOrCode, req.BloodGroupRequired,
		req.UrgencyLevel, req.NeededBy, req.LocationDescription,
		req.ContactPersonName, req.ContactPhone, req.Status, req.Notes,
	)
	if err != nil {
		return fmt.Errorf("create blood request: %w", err)
	}
	return nil
}

func (r *requestRepoPG) ListActive(ctx context.Context) ([]Request, error) {
	rows, err := r.pool.Query(ctx, requestReadQuery+`
		WHERE br.status = 'ACTIVE'`+requestReadGroupBy+`
		ORDER BY
			CASE br.urgency_level
				WHEN 'CRITICAL' THEN 1
				WHEN 'HIGH' THEN 2
				WHEN 'MEDIUM' THEN 3
				WHEN 'LOW' THEN 4
			END,
			br.needed_by ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list active blood requests: %w", err)
	}
	defer rows.Close()

	requests := make([]Request, 0)
	for rows.Next() {
		var req Request
		if err := scanRequest(rows.Scan, &req); err != nil {
			return nil, fmt.Errorf("scan blood request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blood requests: %w", err)
	}
	return requests, nil
}

func (r *requestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	var req Request
	err := scanRequest(
		r.pool.QueryRow(ctx, requestReadQuery+` WHERE br.id = $1`+requestReadGroupBy, id).Scan,
		&req,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func scanRequest(scan func(...any) error, req *Request) error {
	return scan(
		&req.ID, &req.PatientNameOrCode, &req.BloodGroupRequired,
		&req.UrgencyLevel, &req.NeededBy, &req.LocationDescription,
		&req.ContactPersonName, &req.ContactPhone, &req.Status, &req.Notes,
		&req.CreatedAt, &req.HospitalID, &req.HospitalName, &req.RespondersCount,
	)
}

func (r *requestRepoPG) GetStatus(ctx context.Context, id uuid.UUID) (RequestStatus, error) {
	var status RequestStatus
	err := r.pool.QueryRow(ctx,
		`SELECT status FROM blood_requests WHERE id = $1`, id,
	).Scan(&status)
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *requestRepoPG) TransitionStatus(ctx context.Context, id uuid.UUID, from, to RequestStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE blood_requests SET status = $3 WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("transition blood request status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *requestRepoPG) CountByStatus(ctx context.Context, status RequestStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM blood_requests WHERE status = $1`, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count blood requests: %w", err)
	}
	return count, nil
}

type responseRepoPG struct {
	pool *pgxpool.Pool
}

func NewResponseRepo(pool *pgxpool.Pool) ResponseRepository {
	return &responseRepoPG{pool: pool}
}

// Create inserts the response row. The UNIQUE (blood_request_id, donor_id)
// constraint is the backstop against raced duplicates; the unique-violation
// error is passed through for the service to classify.
func (r *responseRepoPG) Create(ctx context.Context, resp *DonorResponse) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blood_donor_responses (id, blood_request_id, donor_id, status, responded_at)
		VALUES ($1, $2, $3, $4, $5)`,
		resp.ID, resp.BloodRequestID, resp.DonorID, resp.Status, resp.RespondedAt,
	)
	return err
}

func (r *responseRepoPG) Exists(ctx context.Context, requestID, donorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM blood_donor_responses
			WHERE blood_request_id = $1 AND donor_id = $2
		)`,
		requestID, donorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check existing response: %w", err)
	}
	return exists, nil
}
