package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const paymentSelect = `
	SELECT p.id, p.client_id, p.amount, p.due_date, p.is_paid, p.visible, p.created_at,
	       c.name AS client_name, c.phone AS client_phone
	FROM payments p
	JOIN clients c ON c.id = p.client_id
`

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (client_id, amount, due_date, is_paid, visible)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(ctx, query,
		payment.ClientID,
		payment.Amount,
		payment.DueDate.Format(utils.DateLayout),
		payment.IsPaid,
		payment.Visible,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var payment domain.Payment
	if err := r.db.GetContext(ctx, &payment, paymentSelect+` WHERE p.id = $1`, id); err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ClientID > 0 {
		conds = append(conds, "p.client_id = "+arg(filter.ClientID))
	}
	if len(filter.IDs) > 0 {
		conds = append(conds, "p.id = ANY("+arg(pq.Array(filter.IDs))+")")
	}
	if filter.UnpaidOnly {
		conds = append(conds, "p.is_paid = FALSE")
	}
	if filter.VisibleOnly {
		conds = append(conds, "p.visible = TRUE")
	}

	query := paymentSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.due_date, p.id"

	payments := []*domain.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) ListUnpaid(ctx context.Context) ([]*domain.Payment, error) {
	return r.List(ctx, domain.PaymentFilter{UnpaidOnly: true, VisibleOnly: true})
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET client_id = $2, amount = $3, due_date = $4::date
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.ClientID,
		payment.Amount,
		payment.DueDate.Format(utils.DateLayout),
	)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *paymentRepository) SetPaid(ctx context.Context, id int64, paid bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE payments SET is_paid = $2 WHERE id = $1`, id, paid)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *paymentRepository) SetVisible(ctx context.Context, id int64, visible bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE payments SET visible = $2 WHERE id = $1`, id, visible)
	if err != nil {
		return err
	}

	return requireAffected(res)
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireAffected(res)
}
