package mocks

import (
	"context"
	"time"

	"github.com/segyhp/reminder-engine/internal/cache"

	"github.com/stretchr/testify/mock"
)

type MockReminderCache struct {
	mock.Mock
}

func (m *MockReminderCache) AcquireRunLock(ctx context.Context) (cache.Lock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cache.Lock), args.Error(1)
}

func (m *MockReminderCache) WasSent(ctx context.Context, paymentID int64, day time.Time) (bool, error) {
	args := m.Called(ctx, paymentID, day)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderCache) MarkSent(ctx context.Context, paymentID int64, day time.Time) error {
	args := m.Called(ctx, paymentID, day)
	return args.Error(0)
}

type MockRunLock struct {
	mock.Mock
}

func (m *MockRunLock) Extend(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRunLock) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// NopLock is a run lock that is always held
type NopLock struct{}

func (NopLock) Extend(context.Context) error  { return nil }
func (NopLock) Release(context.Context) error { return nil }
