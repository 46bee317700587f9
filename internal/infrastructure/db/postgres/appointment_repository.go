package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/telemedpro/booking-api/internal/core/domain"
)

// slotConstraint is the partial unique index over
// (appointment_date, appointment_time) WHERE status <> 'cancelled'.
// It is the system's double-booking guard; see db/migrations/001_init.sql.
const slotConstraint = "appointments_active_slot_idx"

// AppointmentRepository persists the appointment ledger.
type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentColumns = `
	id,
	COALESCE(account_id::text, ''),
	name, email, phone,
	COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), ''),
	appointment_date,
	to_char(appointment_time, 'HH24:MI:SS'),
	service_type, reason,
	COALESCE(insurance_provider, ''),
	status, created_at, updated_at`

func (r *AppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO appointments
			(id, account_id, name, email, phone, date_of_birth,
			 appointment_date, appointment_time, service_type, reason,
			 insurance_provider, status, created_at, updated_at)
		 VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, NULLIF($6, '')::date,
			 $7, $8::time, $9, $10, NULLIF($11, ''), $12, $13, $14)`,
		appt.ID, appt.AccountID, appt.Name, appt.Email, appt.Phone, appt.DateOfBirth,
		appt.Date, appt.TimeOfDay, appt.ServiceType, appt.Reason,
		appt.InsuranceProvider, appt.Status, appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == slotConstraint {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) ExistsActiveSlot(ctx context.Context, date time.Time, timeOfDay string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE appointment_date = $1
			  AND appointment_time = $2::time
			  AND status <> 'cancelled')`,
		date, timeOfDay,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return exists, nil
}

func (r *AppointmentRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+appointmentColumns+`
		 FROM appointments
		 WHERE account_id = $1
		 ORDER BY appointment_date DESC, appointment_time DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var out []domain.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *appt)
	}
	return out, rows.Err()
}

func (r *AppointmentRepository) FindByIDForAccount(ctx context.Context, id, accountID string) (*domain.Appointment, error) {
	appt, err := scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+`
		 FROM appointments
		 WHERE id = $1 AND account_id = $2`,
		id, accountID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return appt, nil
}

func (r *AppointmentRepository) MarkCancelled(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = 'cancelled', updated_at = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) BookedTimes(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT to_char(appointment_time, 'HH24:MI:SS')
		 FROM appointments
		 WHERE appointment_date = $1 AND status <> 'cancelled'
		 ORDER BY 1`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("booked times: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	a := &domain.Appointment{}
	err := row.Scan(
		&a.ID, &a.AccountID, &a.Name, &a.Email, &a.Phone, &a.DateOfBirth,
		&a.Date, &a.TimeOfDay, &a.ServiceType, &a.Reason,
		&a.InsuranceProvider, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return a, nil
}
