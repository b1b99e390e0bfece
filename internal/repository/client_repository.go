package repository

import (
	"context"
	"database/sql"

	"github.com/segyhp/reminder-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (name, phone)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(ctx, query, client.Name, client.Phone).Scan(&client.ID, &client.CreatedAt)
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `
		SELECT id, name, phone, created_at
		FROM clients
		WHERE id = $1
	`

	var client domain.Client
	if err := r.db.GetContext(ctx, &client, query, id); err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *clientRepository) GetByName(ctx context.Context, name string) ([]*domain.Client, error) {
	query := `
		SELECT id, name, phone, created_at
		FROM clients
		WHERE name = $1
		ORDER BY id
	`

	clients := []*domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, query, name); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT id, name, phone, created_at
		FROM clients
		ORDER BY id
	`

	clients := []*domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $2, phone = $3
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, client.ID, client.Name, client.Phone)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

// requireAffected maps "no row matched" to sql.ErrNoRows
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
