package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quoteapi/internal/model"
	"quoteapi/internal/repository"
)

type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.Record) *model.Record); ok {
		return f(ctx, rec), args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockAnalysisRepository) FindByID(ctx context.Context, id string) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockAnalysisRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Record], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Record]), args.Error(1)
}

func (m *MockAnalysisRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
