package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bucket classifies how urgent a payment is relative to a reference date
type Bucket string

const (
	BucketOverdue  Bucket = "OVERDUE"
	BucketDueToday Bucket = "DUE_TODAY"
	BucketDueSoon  Bucket = "DUE_SOON"
	BucketDueLater Bucket = "DUE_LATER"
)

// ReminderResult is the outcome of classifying one payment
type ReminderResult struct {
	Bucket          Bucket          `json:"bucket"`
	Amount          decimal.Decimal `json:"amount"`
	CorrectedAmount decimal.Decimal `json:"corrected_amount"`
	DaysLate        int             `json:"days_late"`
	LateFee         decimal.Decimal `json:"late_fee"`
	DailyInterest   decimal.Decimal `json:"daily_interest"`
	TotalInterest   decimal.Decimal `json:"total_interest"`
	DueDate         time.Time       `json:"due_date"`
	ReferenceDate   time.Time       `json:"reference_date"`
	Message         string          `json:"message"`
}

// Delivery outcome statuses
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Skip reasons
const (
	SkipPaid         = "paid"
	SkipNotFound     = "not_found"
	SkipTooFarAhead  = "too_far_ahead"
	SkipAlreadySent  = "already_sent_today"
	SkipInvalidInput = "invalid_input"
	SkipRunLockLost  = "run_lock_lost"
)

type SendRemindersRequest struct {
	PaymentIDs []int64 `json:"payment_ids" validate:"required,min=1,dive,gt=0"`
	// MaxDaysAhead skips payments due further than this many days away; nil means no limit
	MaxDaysAhead *int `json:"max_days_ahead,omitempty" validate:"omitempty,gte=0"`
}

// DeliveryOutcome reports what happened to a single payment in a reminder run
type DeliveryOutcome struct {
	PaymentID  int64           `json:"payment_id"`
	ClientName string          `json:"client_name,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Status     string          `json:"status"`
	Reason     string          `json:"reason,omitempty"`
	Result     *ReminderResult `json:"result,omitempty"`
}

// SendReport summarizes a reminder run
type SendReport struct {
	RunID      uuid.UUID         `json:"run_id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Sent       int               `json:"sent"`
	Failed     int               `json:"failed"`
	Skipped    int               `json:"skipped"`
	Outcomes   []DeliveryOutcome `json:"outcomes"`
}

// Record appends an outcome and updates the counters
func (r *SendReport) Record(o DeliveryOutcome) {
	switch o.Status {
	case OutcomeSent:
		r.Sent++
	case OutcomeFailed:
		r.Failed++
	case OutcomeSkipped:
		r.Skipped++
	}
	r.Outcomes = append(r.Outcomes, o)
}
