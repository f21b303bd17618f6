package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/servicetypes"
	"vet-clinic/internal/platform/apperr"
)

type ServiceTypesRepo struct {
	db *sql.DB
}

func NewServiceTypesRepo(db *sql.DB) *ServiceTypesRepo {
	return &ServiceTypesRepo{db: db}
}

const serviceTypeColumns = `
	id, name, description,
	duration_minutes, price,
	active, created_at, updated_at`

func (r *ServiceTypesRepo) Create(ctx context.Context, st servicetypes.ServiceType) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO service_types (`+serviceTypeColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		st.ID, st.Name, st.Description,
		st.DurationMinutes, st.Price,
		st.Active, st.CreatedAt, st.UpdatedAt,
	)
	return mapErr(err)
}

func (r *ServiceTypesRepo) Update(ctx context.Context, st servicetypes.ServiceType) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE service_types
		SET
			name = $2,
			description = $3,
			duration_minutes = $4,
			price = $5,
			active = $6,
			updated_at = $7
		WHERE id = $1
	`,
		st.ID, st.Name, st.Description,
		st.DurationMinutes, st.Price,
		st.Active, st.UpdatedAt,
	))
}

func (r *ServiceTypesRepo) GetByID(ctx context.Context, id string) (servicetypes.ServiceType, error) {
	if strings.TrimSpace(id) == "" {
		return servicetypes.ServiceType{}, apperr.ErrNoRows
	}
	st, err := scanServiceType(r.db.QueryRowContext(ctx, `SELECT `+serviceTypeColumns+` FROM service_types WHERE id = $1`, id))
	if err != nil {
		return servicetypes.ServiceType{}, mapErr(err)
	}
	return st, nil
}

func (r *ServiceTypesRepo) FindByName(ctx context.Context, name string) (servicetypes.ServiceType, error) {
	st, err := scanServiceType(r.db.QueryRowContext(ctx,
		`SELECT `+serviceTypeColumns+` FROM service_types WHERE lower(name) = lower($1)`,
		strings.TrimSpace(name),
	))
	if err != nil {
		return servicetypes.ServiceType{}, mapErr(err)
	}
	return st, nil
}

func (r *ServiceTypesRepo) List(ctx context.Context, f servicetypes.ListFilter) ([]servicetypes.ServiceType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+serviceTypeColumns+`
		FROM service_types
		WHERE ($1::boolean IS NULL OR active = $1)
		ORDER BY lower(name) ASC
	`, nullBool(f.Active))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]servicetypes.ServiceType, 0)
	for rows.Next() {
		st, err := scanServiceType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *ServiceTypesRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, `DELETE FROM service_types WHERE id = $1`, id))
}

func scanServiceType(s scanner) (servicetypes.ServiceType, error) {
	var st servicetypes.ServiceType
	err := s.Scan(
		&st.ID, &st.Name, &st.Description,
		&st.DurationMinutes, &st.Price,
		&st.Active, &st.CreatedAt, &st.UpdatedAt,
	)
	return st, err
}
