package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"billingapi/internal/repository"
	"billingapi/internal/service"
)

type MockResourceService[T repository.Document] struct {
	mock.Mock
}

func (m *MockResourceService[T]) Read(ctx context.Context, id string) (*service.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Response), args.Error(1)
}

func (m *MockResourceService[T]) Update(ctx context.Context, id string, patch map[string]any) (*service.Response, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Response), args.Error(1)
}

func (m *MockResourceService[T]) Search(ctx context.Context, q service.SearchQuery) (*service.Response, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Response), args.Error(1)
}

func (m *MockResourceService[T]) Summary(ctx context.Context, f *service.SummaryFilter) (*service.Response, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Response), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Update(ctx context.Context, id string, in service.PaymentUpdate) (*service.Response, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Response), args.Error(1)
}

type MockAttachmentService[T service.Attachable] struct {
	mock.Mock
}

func (m *MockAttachmentService[T]) Upload(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*service.Response, error) {
	args := m.Called(ctx, id, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Response), args.Error(1)
}

func (m *MockAttachmentService[T]) URL(ctx context.Context, id string) (*service.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Response), args.Error(1)
}
