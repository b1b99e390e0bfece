package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/internal/repository"
	customError "github.com/segyhp/reminder-engine/pkg/errors"
	"github.com/segyhp/reminder-engine/pkg/listing"
	"github.com/segyhp/reminder-engine/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// amounts are stored as numeric(12,2)
const maxAmountPlaces = 2

var paymentColumns = listing.Columns[*domain.Payment]{
	"id": func(a, b *domain.Payment) int { return listing.Compare(a.ID, b.ID) },
	"client": func(a, b *domain.Payment) int {
		return listing.Compare(strings.ToLower(a.ClientName), strings.ToLower(b.ClientName))
	},
	"amount":   func(a, b *domain.Payment) int { return a.Amount.Cmp(b.Amount) },
	"due_date": func(a, b *domain.Payment) int { return a.DueDate.Compare(b.DueDate) },
	"status":   func(a, b *domain.Payment) int { return listing.Compare(a.Status(), b.Status()) },
}

type PaymentService struct {
	PaymentRepo repository.PaymentRepository
	ClientRepo  repository.ClientRepository
	backlog     *BacklogService
	logger      *zap.Logger
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
	backlog *BacklogService,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		PaymentRepo: paymentRepo,
		ClientRepo:  clientRepo,
		backlog:     backlog,
		logger:      logger,
	}
}

// Create adds an unpaid, visible payment for the client given by ID or by name
func (s *PaymentService) Create(ctx context.Context, request domain.CreatePaymentRequest) (*domain.Payment, error) {
	client, err := s.resolveClient(ctx, request.ClientID, request.ClientName)
	if err != nil {
		return nil, err
	}

	if err = validateAmount(request.Amount); err != nil {
		return nil, err
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ClientID:    client.ID,
		Amount:      request.Amount,
		DueDate:     dueDate,
		IsPaid:      false,
		Visible:     true,
		ClientName:  client.Name,
		ClientPhone: client.Phone,
	}

	if err = s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.backlog.record(ctx, &payment.ID, fmt.Sprintf("Added payment: Amount %s for client ID %d", payment.Amount.StringFixed(2), client.ID))
	s.logger.Info("payment created",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("client_id", client.ID),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)

	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	payment, err := s.PaymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return payment, nil
}

// List returns payments narrowed by query and sorted by query.Sort
func (s *PaymentService) List(ctx context.Context, query domain.PaymentQuery) ([]*domain.Payment, error) {
	order, err := listing.ParseOrder(query.Order)
	if err != nil {
		return nil, customError.WrapValidation(err)
	}

	payments, err := s.PaymentRepo.List(ctx, domain.PaymentFilter{
		ClientID:    query.ClientID,
		UnpaidOnly:  query.HidePaid,
		VisibleOnly: query.VisibleOnly,
	})
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	sorted, err := listing.Sort(payments, paymentColumns, query.Sort, order)
	if err != nil {
		return nil, customError.WrapValidation(err)
	}
	return sorted, nil
}

// Update changes the fields present in request and logs each change
func (s *PaymentService) Update(ctx context.Context, id int64, request domain.UpdatePaymentRequest) (*domain.Payment, error) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var changes []string

	if request.Amount != nil && !request.Amount.Equal(payment.Amount) {
		if err = validateAmount(*request.Amount); err != nil {
			return nil, err
		}
		changes = append(changes, fmt.Sprintf("Edited payment: ID %d, from %s to %s",
			id, payment.Amount.StringFixed(2), request.Amount.StringFixed(2)))
		payment.Amount = *request.Amount
	}

	if request.ClientID != nil && *request.ClientID != payment.ClientID {
		client, err := s.resolveClient(ctx, *request.ClientID, "")
		if err != nil {
			return nil, err
		}
		changes = append(changes, fmt.Sprintf("Edited payment client: ID %d, from %s (ID %d) to %s (ID %d)",
			id, payment.ClientName, payment.ClientID, client.Name, client.ID))
		payment.ClientID = client.ID
		payment.ClientName = client.Name
		payment.ClientPhone = client.Phone
	}

	if request.DueDate != nil {
		dueDate, err := parseDueDate(*request.DueDate)
		if err != nil {
			return nil, err
		}
		if !dueDate.Equal(payment.DueDate) {
			changes = append(changes, fmt.Sprintf("Edited payment due date: ID %d, from %s to %s",
				id, payment.DueDate.Format(utils.DateLayout), dueDate.Format(utils.DateLayout)))
			payment.DueDate = dueDate
		}
	}

	if len(changes) == 0 {
		return payment, nil
	}

	if err = s.PaymentRepo.Update(ctx, payment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	for _, change := range changes {
		s.backlog.record(ctx, &payment.ID, change)
	}

	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.PaymentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapPaymentNotFound(id)
		}
		return customError.WrapDatabaseError(err)
	}

	s.backlog.record(ctx, &payment.ID, fmt.Sprintf("Deleted payment: ID %d for client %s (ID %d)", id, payment.ClientName, payment.ClientID))
	return nil
}

// SetPaid marks the payment paid or pending
func (s *PaymentService) SetPaid(ctx context.Context, id int64, paid bool) (*domain.Payment, error) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.setPaid(ctx, payment, paid)
}

// ToggleStatus flips the paid flag
func (s *PaymentService) ToggleStatus(ctx context.Context, id int64) (*domain.Payment, error) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.setPaid(ctx, payment, !payment.IsPaid)
}

func (s *PaymentService) setPaid(ctx context.Context, payment *domain.Payment, paid bool) (*domain.Payment, error) {
	if payment.IsPaid == paid {
		return payment, nil
	}

	from := payment.Status()
	if err := s.PaymentRepo.SetPaid(ctx, payment.ID, paid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(payment.ID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	payment.IsPaid = paid

	s.backlog.record(ctx, &payment.ID, fmt.Sprintf("Changed payment status: ID %d, from %s to %s", payment.ID, from, payment.Status()))
	return payment, nil
}

// SetVisible shows or hides the payment in visible-only listings and scheduled runs
func (s *PaymentService) SetVisible(ctx context.Context, id int64, visible bool) (*domain.Payment, error) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Visible == visible {
		return payment, nil
	}

	if err = s.PaymentRepo.SetVisible(ctx, id, visible); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	payment.Visible = visible

	s.backlog.record(ctx, &payment.ID, fmt.Sprintf("Changed payment visibility: ID %d, visible %t", id, visible))
	return payment, nil
}

// resolveClient looks the client up by ID, or by exact name when no ID is given.
// Of several clients sharing a name the oldest wins.
func (s *PaymentService) resolveClient(ctx context.Context, id int64, name string) (*domain.Client, error) {
	if id > 0 {
		client, err := s.ClientRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, customError.WrapClientNotFound(id)
			}
			return nil, customError.WrapDatabaseError(err)
		}
		return client, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, customError.WrapValidation(errors.New("client_id or client_name is required"))
	}

	clients, err := s.ClientRepo.GetByName(ctx, name)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if len(clients) == 0 {
		return nil, customError.WrapClientNameNotFound(name)
	}
	return clients[0], nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() || utils.DecimalPlaces(amount) > maxAmountPlaces {
		return customError.WrapInvalidPaymentAmount(amount.String())
	}
	return nil
}

func parseDueDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, customError.WrapInvalidDueDate("due date is required")
	}
	dueDate, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, customError.WrapInvalidDueDate(fmt.Sprintf("%q is not a yyyy-mm-dd date", s))
	}
	return dueDate, nil
}
