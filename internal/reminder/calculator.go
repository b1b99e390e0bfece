// Package reminder classifies unpaid installments by urgency, applies the
// late-payment correction to overdue ones and composes the reminder text.
//
// Everything here is pure: no I/O, no clock, no shared state. Callers pass the
// reference date explicitly, so results are reproducible and safe to compute
// from any number of goroutines.
package reminder

import (
	"time"

	"github.com/segyhp/reminder-engine/internal/config"
	"github.com/segyhp/reminder-engine/internal/domain"
	customError "github.com/segyhp/reminder-engine/pkg/errors"
	"github.com/segyhp/reminder-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// Policy holds the late-payment correction parameters.
type Policy struct {
	// LateFeeRate is the one-time penalty applied once a payment is overdue.
	LateFeeRate decimal.Decimal
	// MonthlyInterestRate is the nominal monthly rate, accrued linearly per day late.
	MonthlyInterestRate decimal.Decimal
	// DaysPerMonth spreads the monthly rate over this many days.
	DaysPerMonth int
	// DueSoonDays is the inclusive window before the due date classified as DUE_SOON.
	DueSoonDays int
}

// DefaultPolicy is 5% late fee plus 3% a month over 30 days, with a 3 day "due soon" window.
func DefaultPolicy() Policy {
	return Policy{
		LateFeeRate:         decimal.RequireFromString("0.05"),
		MonthlyInterestRate: decimal.RequireFromString("0.03"),
		DaysPerMonth:        30,
		DueSoonDays:         3,
	}
}

// PolicyFromConfig reads the policy from the LATE_FEE_RATE, MONTHLY_INTEREST_RATE,
// INTEREST_DAYS_PER_MONTH and DUE_SOON_DAYS settings.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		LateFeeRate:         cfg.GetLateFeeRate(),
		MonthlyInterestRate: cfg.GetMonthlyInterestRate(),
		DaysPerMonth:        cfg.Business.InterestDaysPerMonth,
		DueSoonDays:         cfg.Business.DueSoonDays,
	}
}

type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	if policy.DaysPerMonth <= 0 {
		policy.DaysPerMonth = DefaultPolicy().DaysPerMonth
	}
	return &Calculator{policy: policy}
}

// Policy returns the correction parameters in use
func (c *Calculator) Policy() Policy {
	return c.policy
}

// ValidateInput rejects what Classify does not handle: negative amounts and missing dates.
func ValidateInput(amount decimal.Decimal, dueDate time.Time) error {
	if amount.IsNegative() {
		return customError.WrapInvalidPaymentAmount(amount.String())
	}
	if dueDate.IsZero() {
		return customError.WrapInvalidDueDate("due date is required")
	}
	return nil
}

// Classify buckets a payment relative to referenceDate and composes its reminder.
// Both dates are compared as calendar days. Only OVERDUE payments are corrected;
// intermediate values keep full precision and rounding happens in the message.
func (c *Calculator) Classify(amount decimal.Decimal, dueDate time.Time, clientName string, referenceDate time.Time) domain.ReminderResult {
	due := utils.TruncateToDate(dueDate)
	today := utils.TruncateToDate(referenceDate)

	result := domain.ReminderResult{
		Amount:          amount,
		CorrectedAmount: amount,
		LateFee:         decimal.Zero,
		DailyInterest:   decimal.Zero,
		TotalInterest:   decimal.Zero,
		DueDate:         due,
		ReferenceDate:   today,
	}

	switch {
	case today.After(due):
		result.Bucket = domain.BucketOverdue
		result.DaysLate = utils.DaysBetween(due, today)
		c.correct(&result)
	case today.Equal(due):
		result.Bucket = domain.BucketDueToday
	case !today.Before(due.AddDate(0, 0, -c.policy.DueSoonDays)):
		result.Bucket = domain.BucketDueSoon
	default:
		result.Bucket = domain.BucketDueLater
	}

	result.Message = ComposeMessage(clientName, result)
	return result
}

func (c *Calculator) correct(result *domain.ReminderResult) {
	days := decimal.NewFromInt(int64(result.DaysLate))
	daysPerMonth := decimal.NewFromInt(int64(c.policy.DaysPerMonth))
	monthly := result.Amount.Mul(c.policy.MonthlyInterestRate)

	result.LateFee = result.Amount.Mul(c.policy.LateFeeRate)
	result.DailyInterest = monthly.Div(daysPerMonth)
	// multiply before dividing so the per-day quotient is not truncated and then scaled
	result.TotalInterest = monthly.Mul(days).Div(daysPerMonth)
	result.CorrectedAmount = result.Amount.Add(result.LateFee).Add(result.TotalInterest)
}

var defaultCalculator = NewCalculator(DefaultPolicy())

// Classify uses the default policy.
func Classify(amount decimal.Decimal, dueDate time.Time, clientName string, referenceDate time.Time) domain.ReminderResult {
	return defaultCalculator.Classify(amount, dueDate, clientName, referenceDate)
}
