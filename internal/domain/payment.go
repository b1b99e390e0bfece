package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

// Payment is a single installment owed by a client
type Payment struct {
	ID        int64           `json:"id" db:"id"`
	ClientID  int64           `json:"client_id" db:"client_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	DueDate   time.Time       `json:"due_date" db:"due_date"` // date-only semantics
	IsPaid    bool            `json:"is_paid" db:"is_paid"`
	Visible   bool            `json:"visible" db:"visible"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`

	// joined from clients
	ClientName  string `json:"client_name" db:"client_name"`
	ClientPhone string `json:"client_phone" db:"client_phone"`
}

// Status returns paid or pending
func (p *Payment) Status() string {
	if p.IsPaid {
		return PaymentStatusPaid
	}
	return PaymentStatusPending
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentFilter narrows a payment select; zero values mean "any".
type PaymentFilter struct {
	ClientID    int64
	IDs         []int64
	UnpaidOnly  bool
	VisibleOnly bool
}

type CreatePaymentRequest struct {
	// one of ClientID or ClientName identifies the client
	ClientID   int64           `json:"client_id" validate:"omitempty,gt=0"`
	ClientName string          `json:"client_name" validate:"omitempty,max=200"`
	Amount     decimal.Decimal `json:"amount" validate:"decimal_gte=0"`
	DueDate    string          `json:"due_date" validate:"required,datetime=2006-01-02"`
}

type UpdatePaymentRequest struct {
	ClientID *int64           `json:"client_id,omitempty" validate:"omitempty,gt=0"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	DueDate  *string          `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type SetStatusRequest struct {
	// nil toggles the current status
	IsPaid *bool `json:"is_paid"`
}

type SetVisibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

type PaymentQuery struct {
	ClientID    int64
	HidePaid    bool
	VisibleOnly bool
	Sort        string
	Order       string
}
