package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kakeibo/internal/service"
)

// MockOCRService is a mock implementation of service.OCRService.
type MockOCRService struct {
	mock.Mock
}

func (m *MockOCRService) RunSingle(ctx context.Context, input *service.OCRInput) (*service.OCROutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OCROutput), args.Error(1)
}

func (m *MockOCRService) RunMulti(ctx context.Context, input *service.OCRInput) (*service.OCROutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OCROutput), args.Error(1)
}
