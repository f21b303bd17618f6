package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/platform/apperr"
)

// AppointmentsRepo: el índice único parcial appointments_slot_uq es la garantía
// de no-doble-reserva; un 23505 sale como apperr.ErrDuplicate.
type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

// start_time/end_time son TIME; se leen como HH:MM.
const appointmentSelect = `
	SELECT
		id, pet_id, veterinarian_id,
		date, to_char(start_time, 'HH24:MI'), COALESCE(to_char(end_time, 'HH24:MI'), ''),
		status, reason, priority, notes,
		COALESCE(reservation_id, ''), COALESCE(service_type_id, ''),
		created_at, updated_at
	FROM appointments`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, pet_id, veterinarian_id,
			date, start_time, end_time,
			status, reason, priority, notes,
			reservation_id, service_type_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5::time,$6::time,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		a.ID, a.PetID, a.VeterinarianID,
		a.Date, a.StartTime, toNullString(a.EndTime),
		string(a.Status), a.Reason, string(a.Priority), a.Notes,
		toNullString(a.ReservationID), toNullString(a.ServiceTypeID),
		a.CreatedAt, a.UpdatedAt,
	)
	return mapErr(err)
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			pet_id = $2,
			veterinarian_id = $3,
			date = $4,
			start_time = $5::time,
			end_time = $6::time,
			status = $7,
			reason = $8,
			priority = $9,
			notes = $10,
			reservation_id = $11,
			service_type_id = $12,
			updated_at = $13
		WHERE id = $1
	`,
		a.ID, a.PetID, a.VeterinarianID,
		a.Date, a.StartTime, toNullString(a.EndTime),
		string(a.Status), a.Reason, string(a.Priority), a.Notes,
		toNullString(a.ReservationID), toNullString(a.ServiceTypeID),
		a.UpdatedAt,
	))
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return appointments.Appointment{}, apperr.ErrNoRows
	}
	a, err := scanAppointment(r.db.QueryRowContext(ctx, appointmentSelect+` WHERE id = $1`, id))
	if err != nil {
		return appointments.Appointment{}, mapErr(err)
	}
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context, f appointments.Filter) ([]appointments.Appointment, error) {
	q, args := buildAppointmentQuery(f)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// buildAppointmentQuery arma el WHERE con placeholders numerados según los filtros presentes.
func buildAppointmentQuery(f appointments.Filter) (string, []any) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.PetID != "" {
		add("pet_id = $%d", f.PetID)
	}
	if len(f.PetIDs) > 0 {
		add("pet_id = ANY($%d)", f.PetIDs)
	}
	if f.VeterinarianID != "" {
		add("veterinarian_id = $%d", f.VeterinarianID)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Date != nil {
		add("date = $%d", *f.Date)
	}

	q := appointmentSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	if f.Date != nil {
		q += " ORDER BY start_time ASC"
	} else {
		q += " ORDER BY date DESC, start_time DESC"
	}
	return q, args
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id))
}

func (r *AppointmentsRepo) SlotTaken(ctx context.Context, veterinarianID string, date time.Time, startTime, excludeID string) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE veterinarian_id = $1
			  AND date = $2
			  AND start_time = $3::time
			  AND status <> 'CANCELLED'
			  AND id <> $4
		)
	`, veterinarianID, date, startTime, excludeID).Scan(&taken)
	return taken, err
}

func (r *AppointmentsRepo) CountByPet(ctx context.Context, petID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM appointments WHERE pet_id = $1`, petID).Scan(&n)
	return n, err
}

func (r *AppointmentsRepo) CountByServiceType(ctx context.Context, serviceTypeID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM appointments WHERE service_type_id = $1`, serviceTypeID).Scan(&n)
	return n, err
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var status, priority string
	if err := s.Scan(
		&a.ID, &a.PetID, &a.VeterinarianID,
		&a.Date, &a.StartTime, &a.EndTime,
		&status, &a.Reason, &priority, &a.Notes,
		&a.ReservationID, &a.ServiceTypeID,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}
	a.Status = appointments.Status(status)
	a.Priority = appointments.Priority(priority)
	a.Date = a.Date.UTC()
	return a, nil
}
