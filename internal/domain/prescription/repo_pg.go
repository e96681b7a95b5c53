package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const prescriptionReadQuery = `
	SELECT
		p.id,
		p.diagnosis,
		p.created_at,
		u_doctor.name AS doctor_name,
		h.name AS hospital_name
	FROM prescriptions p
	LEFT JOIN users u_doctor ON p.doctor_id = u_doctor.id
	LEFT JOIN hospitals h ON p.hospital_id = h.id`

type prescriptionRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]Prescription, error) {
	rows, err := r.pool.Query(ctx, prescriptionReadQuery+`
		WHERE p.patient_id = $1
		ORDER BY p.created_at DESC`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}

	prescriptions, err := scanPrescriptions(rows)
	if err != nil {
		return nil, err
	}

	for i := range prescriptions {
		if err := r.attachDetails(ctx, &prescriptions[i]); err != nil {
			return nil, err
		}
	}
	return prescriptions, nil
}

func (r *prescriptionRepoPG) GetForPatient(ctx context.Context, id, patientID uuid.UUID) (*Prescription, error) {
	var p Prescription
	var doctorName, hospitalName *string
	err := r.pool.QueryRow(ctx, prescriptionReadQuery+` WHERE p.id = $1 AND p.patient_id = $2`, id, patientID).
		Scan(&p.ID, &p.Diagnosis, &p.CreatedAt, &doctorName, &hospitalName)
	if err != nil {
		return nil, err
	}
	p.DoctorName = withFallback(doctorName, unknownDoctor)
	p.HospitalName = withFallback(hospitalName, unknownHospital)

	if err := r.attachDetails(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPrescriptions(rows pgx.Rows) ([]Prescription, error) {
	defer rows.Close()

	prescriptions := make([]Prescription, 0)
	for rows.Next() {
		var p Prescription
		var doctorName, hospitalName *string
		if err := rows.Scan(&p.ID, &p.Diagnosis, &p.CreatedAt, &doctorName, &hospitalName); err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		p.DoctorName = withFallback(doctorName, unknownDoctor)
		p.HospitalName = withFallback(hospitalName, unknownHospital)
		prescriptions = append(prescriptions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prescriptions: %w", err)
	}
	return prescriptions, nil
}

func withFallback(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// attachDetails loads the items and the latest order for one prescription.
func (r *prescriptionRepoPG) attachDetails(ctx context.Context, p *Prescription) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, medicine_name, dosage, frequency, duration, instructions
		FROM prescription_items
		WHERE prescription_id = $1
		ORDER BY id`,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("list prescription items: %w", err)
	}
	defer rows.Close()

	p.Items = make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.MedicineName, &item.Dosage, &item.Frequency, &item.Duration, &item.Instructions); err != nil {
			return fmt.Errorf("scan prescription item: %w", err)
		}
		p.Items = append(p.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate prescription items: %w", err)
	}

	var order Order
	err = r.pool.QueryRow(ctx, `
		SELECT id, status, delivery_address, contact_phone, created_at, updated_at
		FROM medicine_orders
		WHERE prescription_id = $1
		ORDER BY created_at DESC
		LIMIT 1`,
		p.ID,
	).Scan(&order.ID, &order.Status, &order.DeliveryAddress, &order.ContactPhone, &order.CreatedAt, &order.UpdatedAt)
	switch {
	case err == nil:
		p.Order = &order
	case errors.Is(err, pgx.ErrNoRows):
		p.Order = nil
	default:
		return fmt.Errorf("load medicine order: %w", err)
	}
	return nil
}

func (r *prescriptionRepoPG) OwnedByPatient(ctx context.Context, id, patientID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM prescriptions WHERE id = $1 AND patient_id = $2)`,
		id, patientID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check prescription ownership: %w", err)
	}
	return ok, nil
}

func (r *prescriptionRepoPG) HasOrder(ctx context.Context, prescriptionID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM medicine_orders WHERE prescription_id = $1)`,
		prescriptionID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check existing order: %w", err)
	}
	return ok, nil
}

// CreateOrder writes the order and its items in one transaction. The unique
// constraint on prescription_id is the backstop against raced duplicates;
// its violation is passed through for the service to classify.
func (r *prescriptionRepoPG) CreateOrder(ctx context.Context, o *Order, patientID, prescriptionID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO medicine_orders (id, patient_id, prescription_id, delivery_address, contact_phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, patientID, prescriptionID, o.DeliveryAddress, o.ContactPhone, o.Status, o.CreatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO medicine_order_items (id, order_id, prescription_item_id, quantity)
		SELECT gen_random_uuid(), $1, id, 1
		FROM prescription_items
		WHERE prescription_id = $2`,
		o.ID, prescriptionID,
	)
	if err != nil {
		return fmt.Errorf("copy order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}
	return nil
}

type contactDirectoryPG struct {
	pool *pgxpool.Pool
}

// NewContactDirectory reads delivery defaults from the users table.
func NewContactDirectory(pool *pgxpool.Pool) ContactDirectory {
	return &contactDirectoryPG{pool: pool}
}

func (d *contactDirectoryPG) Contact(ctx context.Context, userID uuid.UUID) (string, string, error) {
	var addressLine, phone *string
	err := d.pool.QueryRow(ctx,
		`SELECT address_line, phone FROM users WHERE id = $1`, userID,
	).Scan(&addressLine, &phone)
	if err != nil {
		return "", "", fmt.Errorf("load user contact: %w", err)
	}
	return withFallback(addressLine, ""), withFallback(phone, ""), nil
}
