package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kakeibo/internal/domain"
)

// MockOCREngine is a mock implementation of port.OCREngine.
type MockOCREngine struct {
	mock.Mock
	EngineName domain.EngineName
}

func (m *MockOCREngine) Name() domain.EngineName {
	return m.EngineName
}

func (m *MockOCREngine) Recognize(ctx context.Context, image []byte) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}
