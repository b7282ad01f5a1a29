package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wekeepgrowing/payment-recovery/internal/domain/analytics"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/model"
	"github.com/wekeepgrowing/payment-recovery/internal/domain/provider"
	"github.com/wekeepgrowing/payment-recovery/internal/usecase"
)

// MockPaymentAttemptRepository is a mock implementation of PaymentAttemptRepository
type MockPaymentAttemptRepository struct {
	mock.Mock
}

func (m *MockPaymentAttemptRepository) Create(ctx context.Context, attempt *model.PaymentAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockPaymentAttemptRepository) ListByGoalID(ctx context.Context, goalID string) ([]model.PaymentAttempt, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PaymentAttempt), args.Error(1)
}

func (m *MockPaymentAttemptRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]model.PaymentAttempt, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PaymentAttempt), args.Error(1)
}

func (m *MockPaymentAttemptRepository) CountByGoalID(ctx context.Context, goalID string) (int64, error) {
	args := m.Called(ctx, goalID)
	return args.Get(0).(int64), args.Error(1)
}

// MockGoalRepository is a mock implementation of GoalRepository
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) UpdateStatus(ctx context.Context, goalID string, status string) (int64, error) {
	args := m.Called(ctx, goalID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockTracker records analytics events
type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Track(event string, props analytics.Properties) {
	m.Called(event, props)
}

// MockPaymentIntentProvider is a mock implementation of PaymentIntentProvider
type MockPaymentIntentProvider struct {
	mock.Mock
}

func (m *MockPaymentIntentProvider) Retrieve(ctx context.Context, paymentIntentID string) (*provider.PaymentIntent, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentProvider) Confirm(ctx context.Context, paymentIntentID, paymentMethodID string) (*provider.PaymentIntent, error) {
	args := m.Called(ctx, paymentIntentID, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentProvider) GetProviderName() string {
	return "mock"
}

// MockAttemptLedger is a mock implementation of usecase.AttemptLedger
type MockAttemptLedger struct {
	mock.Mock
}

func (m *MockAttemptLedger) CreatePaymentAttempt(ctx context.Context, params usecase.CreatePaymentAttemptParams) *model.PaymentAttempt {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*model.PaymentAttempt)
}

func (m *MockAttemptLedger) GetPaymentAttemptCountForGoal(ctx context.Context, goalID string) int {
	args := m.Called(ctx, goalID)
	return args.Int(0)
}
