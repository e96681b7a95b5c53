package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const appointmentReadQuery = `
	SELECT
		a.id,
		a.patient_id,
		a.requested_date_time,
		a.scheduled_date_time,
		a.status,
		a.notes,
		a.created_at,
		h.id AS hospital_id,
		h.name AS hospital_name,
		u_doctor.id AS doctor_id,
		u_doctor.name AS doctor_name
	FROM appointments a
	LEFT JOIN hospitals h ON a.hospital_id = h.id
	LEFT JOIN users u_doctor ON a.doctor_id = u_doctor.id`

type appointmentRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) Create(ctx context.Context, p CreateParams) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (
			id, patient_id, doctor_id, hospital_id,
			requested_date_time, scheduled_date_time, status, notes
		) VALUES ($1, $2, $3, $4, $5, $5, 'REQUESTED', $6)`,
		p.ID, p.PatientID, p.DoctorID, p.HospitalID, p.RequestedDateTime, p.Notes,
	)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepoPG) GetForPatient(ctx context.Context, id, patientID uuid.UUID) (*Appointment, error) {
	var a Appointment
	err := scanAppointment(
		r.pool.QueryRow(ctx, appointmentReadQuery+` WHERE a.id = $1 AND a.patient_id = $2`, id, patientID).Scan,
		&a,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepoPG) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, appointmentReadQuery+`
		WHERE a.patient_id = $1
		ORDER BY a.requested_date_time DESC`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]Appointment, 0)
	for rows.Next() {
		var a Appointment
		if err := scanAppointment(rows.Scan, &a); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return appointments, nil
}

func scanAppointment(scan func(...any) error, a *Appointment) error {
	return scan(
		&a.ID, &a.PatientID, &a.RequestedDateTime, &a.ScheduledDateTime,
		&a.Status, &a.Notes, &a.CreatedAt,
		&a.HospitalID, &a.HospitalName, &a.DoctorID, &a.DoctorName,
	)
}

type doctorDirectoryPG struct {
	pool *pgxpool.Pool
}

// NewDoctorDirectory answers doctor/hospital membership from the doctors
// table.
func NewDoctorDirectory(pool *pgxpool.Pool) DoctorDirectory {
	return &doctorDirectoryPG{pool: pool}
}

func (d *doctorDirectoryPG) BelongsToHospital(ctx context.Context, doctorID, hospitalID uuid.UUID) (bool, error) {
	var ok bool
	err := d.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1 AND hospital_id = $2)`,
		doctorID, hospitalID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check doctor hospital membership: %w", err)
	}
	return ok, nil
}
