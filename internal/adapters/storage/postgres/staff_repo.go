package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/staff"
	"vet-clinic/internal/platform/apperr"
)

type StaffRepo struct {
	db *sql.DB
}

func NewStaffRepo(db *sql.DB) *StaffRepo {
	return &StaffRepo{db: db}
}

const staffColumns = `id, full_name, email, role, active, created_at, updated_at`

func (r *StaffRepo) Create(ctx context.Context, a staff.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO staff_accounts (`+staffColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, a.ID, a.FullName, a.Email, string(a.Role), a.Active, a.CreatedAt, a.UpdatedAt)
	return mapErr(err)
}

func (r *StaffRepo) Update(ctx context.Context, a staff.Account) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE staff_accounts
		SET full_name = $2, email = $3, role = $4, active = $5, updated_at = $6
		WHERE id = $1
	`, a.ID, a.FullName, a.Email, string(a.Role), a.Active, a.UpdatedAt))
}

func (r *StaffRepo) GetByID(ctx context.Context, id string) (staff.Account, error) {
	if strings.TrimSpace(id) == "" {
		return staff.Account{}, apperr.ErrNoRows
	}
	a, err := scanStaff(r.db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff_accounts WHERE id = $1`, id))
	if err != nil {
		return staff.Account{}, mapErr(err)
	}
	return a, nil
}

func (r *StaffRepo) FindByEmail(ctx context.Context, email string) (staff.Account, error) {
	a, err := scanStaff(r.db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff_accounts WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return staff.Account{}, mapErr(err)
	}
	return a, nil
}

func (r *StaffRepo) List(ctx context.Context, f staff.ListFilter) ([]staff.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+staffColumns+`
		FROM staff_accounts
		WHERE ($1::text = '' OR role = $1)
		  AND ($2::boolean IS NULL OR active = $2)
		ORDER BY full_name ASC
	`, string(f.Role), nullBool(f.Active))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]staff.Account, 0)
	for rows.Next() {
		a, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanStaff(s scanner) (staff.Account, error) {
	var a staff.Account
	var role string
	if err := s.Scan(&a.ID, &a.FullName, &a.Email, &role, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return staff.Account{}, err
	}
	a.Role = staff.Role(role)
	return a, nil
}
