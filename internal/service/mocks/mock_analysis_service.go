package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quoteapi/internal/model"
	"quoteapi/internal/service"
)

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, in service.AnalyzeInput) (*model.AnalysisResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResult), args.Error(1)
}
