package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billingapi/internal/repository"
)

type MockStore[T repository.Document] struct {
	mock.Mock
}

func (m *MockStore[T]) FindOne(ctx context.Context, f repository.Filter) (*T, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockStore[T]) Find(ctx context.Context, f repository.Filter, limit int) ([]T, error) {
	args := m.Called(ctx, f, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) CountDocuments(ctx context.Context, f repository.Filter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore[T]) FindOneAndUpdate(ctx context.Context, f repository.Filter, p repository.Patch) (*T, error) {
	args := m.Called(ctx, f, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

// MockTransactor runs fn inline and records the outcome.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}
