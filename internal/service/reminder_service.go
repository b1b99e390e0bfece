package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segyhp/reminder-engine/internal/cache"
	"github.com/segyhp/reminder-engine/internal/channel"
	"github.com/segyhp/reminder-engine/internal/config"
	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/internal/reminder"
	"github.com/segyhp/reminder-engine/internal/repository"
	customError "github.com/segyhp/reminder-engine/pkg/errors"
	"github.com/segyhp/reminder-engine/pkg/phone"
	"github.com/segyhp/reminder-engine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderCache serializes reminder runs and remembers who was already reminded today.
// It is implemented by cache.ReminderCache.
type ReminderCache interface {
	AcquireRunLock(ctx context.Context) (cache.Lock, error)
	WasSent(ctx context.Context, paymentID int64, day time.Time) (bool, error)
	MarkSent(ctx context.Context, paymentID int64, day time.Time) error
}

type ReminderService struct {
	PaymentRepo repository.PaymentRepository
	backlog     *BacklogService
	calculator  *reminder.Calculator
	channel     channel.Channel
	cache       ReminderCache

	countryCode string
	daysAhead   int
	dedup       bool

	now    func() time.Time
	logger *zap.Logger
}

func NewReminderService(
	paymentRepo repository.PaymentRepository,
	backlog *BacklogService,
	calculator *reminder.Calculator,
	ch channel.Channel,
	cache ReminderCache,
	cfg *config.Config,
	logger *zap.Logger,
) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := cfg.GetLocation()
	return &ReminderService{
		PaymentRepo: paymentRepo,
		backlog:     backlog,
		calculator:  calculator,
		channel:     ch,
		cache:       cache,
		countryCode: cfg.Reminder.CountryCode,
		daysAhead:   cfg.Reminder.DaysAhead,
		dedup:       cfg.Reminder.Dedup,
		now:         func() time.Time { return time.Now().In(loc) },
		logger:      logger,
	}
}

// SetClock replaces the clock used for "today"
func (s *ReminderService) SetClock(now func() time.Time) {
	s.now = now
}

// Preview classifies a payment against today without sending anything
func (s *ReminderService) Preview(ctx context.Context, paymentID int64) (*domain.ReminderResult, error) {
	payment, err := s.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(paymentID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if payment.IsPaid {
		return nil, customError.WrapPaymentAlreadyPaid(paymentID)
	}
	if err = reminder.ValidateInput(payment.Amount, payment.DueDate); err != nil {
		return nil, err
	}

	result := s.calculator.Classify(payment.Amount, payment.DueDate, payment.ClientName, s.now())
	return &result, nil
}

// Send reminds the given payments, in request order. Payments are re-read so a
// payment settled since it was listed is skipped. A failed delivery is recorded
// and the run moves on to the next payment.
func (s *ReminderService) Send(ctx context.Context, request domain.SendRemindersRequest) (*domain.SendReport, error) {
	lock, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(ctx, lock)

	payments, err := s.PaymentRepo.List(ctx, domain.PaymentFilter{IDs: request.PaymentIDs})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return s.run(ctx, lock, request.PaymentIDs, payments, request.MaxDaysAhead), nil
}

// SendDue reminds every unpaid, visible payment that is overdue or due within the configured window
func (s *ReminderService) SendDue(ctx context.Context) (*domain.SendReport, error) {
	lock, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(ctx, lock)

	payments, err := s.PaymentRepo.ListUnpaid(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	today := s.now()
	ids := make([]int64, 0, len(payments))
	due := make([]*domain.Payment, 0, len(payments))
	for _, p := range payments {
		if utils.DaysBetween(today, p.DueDate) <= s.daysAhead {
			ids = append(ids, p.ID)
			due = append(due, p)
		}
	}

	return s.run(ctx, lock, ids, due, &s.daysAhead), nil
}

func (s *ReminderService) acquire(ctx context.Context) (cache.Lock, error) {
	if s.cache == nil {
		return heldLock{}, nil
	}
	return s.cache.AcquireRunLock(ctx)
}

func (s *ReminderService) release(ctx context.Context, lock cache.Lock) {
	// the request context may already be done
	if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("failed to release reminder run lock", zap.Error(err))
	}
}

// extend refreshes the run lock before each payment. A lost lock stops the run;
// other cache errors are logged and the run keeps its remaining TTL.
func (s *ReminderService) extend(ctx context.Context, log *zap.Logger, lock cache.Lock) error {
	err := lock.Extend(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, customError.ErrRunLockLost) {
		log.Error("reminder run lock lost, stopping run", zap.Error(err))
		return err
	}
	log.Warn("failed to extend reminder run lock", zap.Error(err))
	return nil
}

func (s *ReminderService) run(ctx context.Context, lock cache.Lock, ids []int64, payments []*domain.Payment, maxDaysAhead *int) *domain.SendReport {
	byID := make(map[int64]*domain.Payment, len(payments))
	for _, p := range payments {
		byID[p.ID] = p
	}

	today := s.now()
	report := &domain.SendReport{
		RunID:     uuid.New(),
		StartedAt: today,
		Outcomes:  make([]domain.DeliveryOutcome, 0, len(ids)),
	}
	log := s.logger.With(zap.String("run_id", report.RunID.String()))

	seen := make(map[int64]bool, len(ids))
	var reminded []string
	var lockErr error

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if lockErr == nil {
			lockErr = s.extend(ctx, log, lock)
		}

		var outcome domain.DeliveryOutcome
		if lockErr != nil {
			outcome = skip(domain.DeliveryOutcome{PaymentID: id}, domain.SkipRunLockLost)
			if p := byID[id]; p != nil {
				outcome.ClientName = p.ClientName
			}
		} else {
			outcome = s.remind(ctx, log, id, byID[id], today, maxDaysAhead)
		}
		report.Record(outcome)
		if outcome.Status == domain.OutcomeSent {
			reminded = append(reminded, outcome.ClientName)
		}
	}

	report.FinishedAt = s.now()

	s.backlog.record(ctx, nil, fmt.Sprintf("Sent reminder for payments: [%s] (sent %d, failed %d, skipped %d)",
		strings.Join(reminded, ", "), report.Sent, report.Failed, report.Skipped))
	log.Info("reminder run finished",
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	)

	return report
}

func (s *ReminderService) remind(ctx context.Context, log *zap.Logger, id int64, p *domain.Payment, today time.Time, maxDaysAhead *int) domain.DeliveryOutcome {
	outcome := domain.DeliveryOutcome{PaymentID: id}
	if p == nil {
		return skip(outcome, domain.SkipNotFound)
	}
	outcome.ClientName = p.ClientName
	log = log.With(zap.Int64("payment_id", id))

	if p.IsPaid {
		return skip(outcome, domain.SkipPaid)
	}
	if maxDaysAhead != nil && utils.DaysBetween(today, p.DueDate) > *maxDaysAhead {
		return skip(outcome, domain.SkipTooFarAhead)
	}
	if err := reminder.ValidateInput(p.Amount, p.DueDate); err != nil {
		log.Warn("payment cannot be classified", zap.Error(err))
		return skip(outcome, domain.SkipInvalidInput)
	}

	if s.dedup && s.cache != nil {
		sent, err := s.cache.WasSent(ctx, id, today)
		if err != nil {
			// dedup is best-effort; send anyway
			log.Warn("failed to read sent marker", zap.Error(err))
		} else if sent {
			return skip(outcome, domain.SkipAlreadySent)
		}
	}

	result := s.calculator.Classify(p.Amount, p.DueDate, p.ClientName, today)
	outcome.Result = &result
	log = log.With(zap.String("bucket", string(result.Bucket)))

	number, err := phone.Normalize(p.ClientPhone, s.countryCode)
	if err != nil {
		log.Warn("invalid client phone", zap.String("phone", p.ClientPhone))
		return fail(outcome, err)
	}
	outcome.Phone = number

	if err = s.channel.Deliver(ctx, number, result.Message); err != nil {
		err = customError.WrapDeliveryFailed(number, err)
		log.Warn("reminder delivery failed", zap.Error(err))
		return fail(outcome, err)
	}

	if s.dedup && s.cache != nil {
		if err = s.cache.MarkSent(ctx, id, today); err != nil {
			log.Warn("failed to write sent marker", zap.Error(err))
		}
	}

	log.Info("reminder sent")
	outcome.Status = domain.OutcomeSent
	return outcome
}

// heldLock stands in for the run lock when no cache is configured
type heldLock struct{}

func (heldLock) Extend(context.Context) error  { return nil }
func (heldLock) Release(context.Context) error { return nil }

func skip(o domain.DeliveryOutcome, reason string) domain.DeliveryOutcome {
	o.Status = domain.OutcomeSkipped
	o.Reason = reason
	return o
}

func fail(o domain.DeliveryOutcome, err error) domain.DeliveryOutcome {
	o.Status = domain.OutcomeFailed
	o.Reason = err.Error()
	return o
}
