package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/platform/apperr"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

const clientColumns = `
	id, full_name, document_id,
	email, phone, address,
	active, created_at, updated_at`

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		c.ID, c.FullName, c.DocumentID,
		c.Email, c.Phone, c.Address,
		c.Active, c.CreatedAt, c.UpdatedAt,
	)
	return mapErr(err)
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	return affected(r.db.ExecContext(ctx, `
		UPDATE clients
		SET
			full_name = $2,
			document_id = $3,
			email = $4,
			phone = $5,
			address = $6,
			active = $7,
			updated_at = $8
		WHERE id = $1
	`,
		c.ID, c.FullName, c.DocumentID,
		c.Email, c.Phone, c.Address,
		c.Active, c.UpdatedAt,
	))
}

func (r *ClientsRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	if strings.TrimSpace(id) == "" {
		return clients.Client{}, apperr.ErrNoRows
	}
	return r.one(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

func (r *ClientsRepo) FindByDocument(ctx context.Context, documentID string) (clients.Client, error) {
	return r.one(ctx, `SELECT `+clientColumns+` FROM clients WHERE document_id = $1`, documentID)
}

func (r *ClientsRepo) FindByEmail(ctx context.Context, email string) (clients.Client, error) {
	return r.one(ctx, `SELECT `+clientColumns+` FROM clients WHERE email <> '' AND lower(email) = lower($1)`, email)
}

func (r *ClientsRepo) List(ctx context.Context, f clients.ListFilter) ([]clients.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE ($1::boolean IS NULL OR active = $1)
		ORDER BY created_at ASC
	`, nullBool(f.Active))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientsRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id))
}

func (r *ClientsRepo) one(ctx context.Context, q string, arg string) (clients.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		return clients.Client{}, mapErr(err)
	}
	return c, nil
}

func scanClient(s scanner) (clients.Client, error) {
	var c clients.Client
	err := s.Scan(
		&c.ID, &c.FullName, &c.DocumentID,
		&c.Email, &c.Phone, &c.Address,
		&c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}
