package repository

import (
	"context"

	"github.com/segyhp/reminder-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type backlogRepository struct {
	db *sqlx.DB
}

func NewBacklogRepository(db *sqlx.DB) BacklogRepository {
	return &backlogRepository{db: db}
}

func (r *backlogRepository) Create(ctx context.Context, entry *domain.BacklogEntry) error {
	query := `
		INSERT INTO backlog (payment_id, responsible_user, description)
		VALUES ($1, $2, $3)
		RETURNING id, change_date
	`

	return r.db.QueryRowxContext(ctx, query,
		entry.PaymentID,
		entry.ResponsibleUser,
		entry.Description,
	).Scan(&entry.ID, &entry.ChangeDate)
}

func (r *backlogRepository) List(ctx context.Context, paymentID *int64) ([]*domain.BacklogEntry, error) {
	query := `
		SELECT id, payment_id, change_date, responsible_user, description
		FROM backlog
	`
	var args []interface{}
	if paymentID != nil {
		query += ` WHERE payment_id = $1`
		args = append(args, *paymentID)
	}
	query += ` ORDER BY change_date DESC, id DESC`

	entries := []*domain.BacklogEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, err
	}

	return entries, nil
}
