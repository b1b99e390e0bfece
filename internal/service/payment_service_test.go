package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/internal/mocks"
	customError "github.com/segyhp/reminder-engine/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newPaymentService() (*PaymentService, *mocks.MockPaymentRepository, *mocks.MockClientRepository, *mocks.MockBacklogRepository) {
	mockPaymentRepo := &mocks.MockPaymentRepository{}
	mockClientRepo := &mocks.MockClientRepository{}
	backlog, backlogRepo := newBacklog()
	return NewPaymentService(mockPaymentRepo, mockClientRepo, backlog, nil), mockPaymentRepo, mockClientRepo, backlogRepo
}

func TestPaymentCreate_ByClientID(t *testing.T) {
	service, mockPaymentRepo, mockClientRepo, backlogRepo := newPaymentService()

	mockClientRepo.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.Client{ID: 2, Name: "Ana", Phone: "44998385898"}, nil)
	mockPaymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.ClientID == 2 && !p.IsPaid && p.Visible && p.DueDate.Equal(date(2025, 1, 5))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Payment).ID = 10
	}).Return(nil)

	payment, err := service.Create(context.Background(), domain.CreatePaymentRequest{
		ClientID: 2,
		Amount:   decimal.RequireFromString("100.00"),
		DueDate:  "2025-01-05",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), payment.ID)
	assert.Equal(t, "Ana", payment.ClientName)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status())
	assert.Equal(t, []string{"Added payment: Amount 100.00 for client ID 2"}, loggedDescriptions(backlogRepo))
	mockPaymentRepo.AssertExpectations(t)
}

func TestPaymentCreate_ByClientName(t *testing.T) {
	service, mockPaymentRepo, mockClientRepo, _ := newPaymentService()

	mockClientRepo.On("GetByName", mock.Anything, "Ana").Return([]*domain.Client{
		{ID: 4, Name: "Ana"},
		{ID: 9, Name: "Ana"},
	}, nil)
	mockPaymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.ClientID == 4
	})).Return(nil)

	_, err := service.Create(context.Background(), domain.CreatePaymentRequest{
		ClientName: "Ana",
		Amount:     decimal.NewFromInt(50),
		DueDate:    "2025-02-01",
	})

	require.NoError(t, err)
	mockPaymentRepo.AssertExpectations(t)
}

func TestPaymentCreate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		request  domain.CreatePaymentRequest
		setup    func(*mocks.MockClientRepository)
		wantCode string
	}{
		{
			name:     "no client",
			request:  domain.CreatePaymentRequest{Amount: decimal.NewFromInt(1), DueDate: "2025-01-05"},
			wantCode: customError.ErrCodeValidation,
		},
		{
			name:    "unknown client id",
			request: domain.CreatePaymentRequest{ClientID: 7, Amount: decimal.NewFromInt(1), DueDate: "2025-01-05"},
			setup: func(m *mocks.MockClientRepository) {
				m.On("GetByID", mock.Anything, int64(7)).Return(nil, sql.ErrNoRows)
			},
			wantCode: customError.ErrCodeClientNotFound,
		},
		{
			name:    "unknown client name",
			request: domain.CreatePaymentRequest{ClientName: "Zé", Amount: decimal.NewFromInt(1), DueDate: "2025-01-05"},
			setup: func(m *mocks.MockClientRepository) {
				m.On("GetByName", mock.Anything, "Zé").Return([]*domain.Client{}, nil)
			},
			wantCode: customError.ErrCodeClientNotFound,
		},
		{
			name:    "negative amount",
			request: domain.CreatePaymentRequest{ClientID: 2, Amount: decimal.NewFromInt(-1), DueDate: "2025-01-05"},
			setup: func(m *mocks.MockClientRepository) {
				m.On("GetByID", mock.Anything, int64(2)).Return(&domain.Client{ID: 2}, nil)
			},
			wantCode: customError.ErrCodeInvalidPaymentAmount,
		},
		{
			name:    "three decimal places",
			request: domain.CreatePaymentRequest{ClientID: 2, Amount: decimal.RequireFromString("10.555"), DueDate: "2025-01-05"},
			setup: func(m *mocks.MockClientRepository) {
				m.On("GetByID", mock.Anything, int64(2)).Return(&domain.Client{ID: 2}, nil)
			},
			wantCode: customError.ErrCodeInvalidPaymentAmount,
		},
		{
			name:    "bad due date",
			request: domain.CreatePaymentRequest{ClientID: 2, Amount: decimal.NewFromInt(1), DueDate: "05/01/2025"},
			setup: func(m *mocks.MockClientRepository) {
				m.On("GetByID", mock.Anything, int64(2)).Return(&domain.Client{ID: 2}, nil)
			},
			wantCode: customError.ErrCodeInvalidDueDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockPaymentRepo, mockClientRepo, _ := newPaymentService()
			if tt.setup != nil {
				tt.setup(mockClientRepo)
			}

			payment, err := service.Create(context.Background(), tt.request)

			assert.Nil(t, payment)
			assert.Equal(t, tt.wantCode, customError.Code(err))
			mockPaymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPaymentList(t *testing.T) {
	service, mockPaymentRepo, _, _ := newPaymentService()
	payments := []*domain.Payment{
		{ID: 1, ClientName: "Carlos", Amount: decimal.NewFromInt(300), DueDate: date(2025, 3, 1)},
		{ID: 2, ClientName: "ana", Amount: decimal.NewFromInt(100), DueDate: date(2025, 1, 1), IsPaid: true},
		{ID: 3, ClientName: "Bia", Amount: decimal.RequireFromString("100.5"), DueDate: date(2025, 2, 1)},
	}

	mockPaymentRepo.On("List", mock.Anything, domain.PaymentFilter{ClientID: 2, UnpaidOnly: true, VisibleOnly: true}).
		Return(payments, nil)

	query := domain.PaymentQuery{ClientID: 2, HidePaid: true, VisibleOnly: true, Sort: "amount", Order: "desc"}
	got, err := service.List(context.Background(), query)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 3, 2}, []int64{got[0].ID, got[1].ID, got[2].ID})

	for column, want := range map[string][]int64{
		"client":   {2, 3, 1},
		"due_date": {2, 3, 1},
		"status":   {2, 1, 3},
		"id":       {1, 2, 3},
	} {
		query.Sort, query.Order = column, ""
		got, err = service.List(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, want, []int64{got[0].ID, got[1].ID, got[2].ID}, column)
	}
}

func TestPaymentUpdate(t *testing.T) {
	service, mockPaymentRepo, mockClientRepo, backlogRepo := newPaymentService()

	mockPaymentRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{
		ID: 5, ClientID: 2, ClientName: "Ana", Amount: decimal.NewFromInt(100), DueDate: date(2025, 1, 5),
	}, nil)
	mockClientRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Client{ID: 3, Name: "Bia", Phone: "11999998888"}, nil)
	mockPaymentRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.ClientID == 3 && p.Amount.Equal(decimal.NewFromInt(120)) && p.DueDate.Equal(date(2025, 2, 5))
	})).Return(nil)

	amount := decimal.NewFromInt(120)
	clientID := int64(3)
	dueDate := "2025-02-05"
	payment, err := service.Update(context.Background(), 5, domain.UpdatePaymentRequest{
		ClientID: &clientID,
		Amount:   &amount,
		DueDate:  &dueDate,
	})

	require.NoError(t, err)
	assert.Equal(t, "Bia", payment.ClientName)
	assert.Equal(t, []string{
		"Edited payment: ID 5, from 100.00 to 120.00",
		"Edited payment client: ID 5, from Ana (ID 2) to Bia (ID 3)",
		"Edited payment due date: ID 5, from 2025-01-05 to 2025-02-05",
	}, loggedDescriptions(backlogRepo))
	mockPaymentRepo.AssertExpectations(t)
}

func TestPaymentStatus(t *testing.T) {
	t.Run("toggle pending to paid", func(t *testing.T) {
		service, mockPaymentRepo, _, backlogRepo := newPaymentService()
		mockPaymentRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5}, nil)
		mockPaymentRepo.On("SetPaid", mock.Anything, int64(5), true).Return(nil)

		payment, err := service.ToggleStatus(context.Background(), 5)

		require.NoError(t, err)
		assert.True(t, payment.IsPaid)
		assert.Equal(t, []string{"Changed payment status: ID 5, from pending to paid"}, loggedDescriptions(backlogRepo))
	})

	t.Run("setting the current status is a no-op", func(t *testing.T) {
		service, mockPaymentRepo, _, backlogRepo := newPaymentService()
		mockPaymentRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, IsPaid: true}, nil)

		payment, err := service.SetPaid(context.Background(), 5, true)

		require.NoError(t, err)
		assert.True(t, payment.IsPaid)
		mockPaymentRepo.AssertNotCalled(t, "SetPaid", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, loggedDescriptions(backlogRepo))
	})

	t.Run("missing payment", func(t *testing.T) {
		service, mockPaymentRepo, _, _ := newPaymentService()
		mockPaymentRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, sql.ErrNoRows)

		_, err := service.SetPaid(context.Background(), 5, true)

		assert.Equal(t, customError.ErrCodePaymentNotFound, customError.Code(err))
	})
}

func TestPaymentSetVisible(t *testing.T) {
	service, mockPaymentRepo, _, backlogRepo := newPaymentService()
	mockPaymentRepo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Visible: true}, nil)
	mockPaymentRepo.On("SetVisible", mock.Anything, int64(5), false).Return(nil)

	payment, err := service.SetVisible(context.Background(), 5, false)

	require.NoError(t, err)
	assert.False(t, payment.Visible)
	assert.Equal(t, []string{"Changed payment visibility: ID 5, visible false"}, loggedDescriptions(backlogRepo))
	mockPaymentRepo.AssertExpectations(t)
}

func TestPaymentDelete(t *testing.T) {
	service, mockPaymentRepo, _, backlogRepo := newPaymentService()
	mockPaymentRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Payment{ID: 5, ClientID: 2, ClientName: "Ana"}, nil)
	mockPaymentRepo.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := service.Delete(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"Deleted payment: ID 5 for client Ana (ID 2)"}, loggedDescriptions(backlogRepo))
	mockPaymentRepo.AssertExpectations(t)
}
