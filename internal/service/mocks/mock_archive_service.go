package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"quoteapi/internal/model"
	"quoteapi/internal/service"
)

type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) Store(ctx context.Context, in service.ArchiveInput) (*model.Record, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockArchiveService) List(ctx context.Context, limit, offset int) (*service.AnalysisListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalysisListResult), args.Error(1)
}

func (m *MockArchiveService) Get(ctx context.Context, id string) (*service.ArchivedAnalysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchivedAnalysis), args.Error(1)
}

func (m *MockArchiveService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Record), args.Error(2)
}

func (m *MockArchiveService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
