package mocks

import (
	"context"

	"sheetparse/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockParserService struct {
	mock.Mock
}

func (m *MockParserService) Parse(ctx context.Context, data []byte, filename string) *model.Envelope {
	args := m.Called(ctx, data, filename)
	return args.Get(0).(*model.Envelope)
}

func (m *MockParserService) ParseBase64(ctx context.Context, fileData, filename string) *model.Envelope {
	args := m.Called(ctx, fileData, filename)
	return args.Get(0).(*model.Envelope)
}

func (m *MockParserService) ParseObject(ctx context.Context, key, filename string) *model.Envelope {
	args := m.Called(ctx, key, filename)
	return args.Get(0).(*model.Envelope)
}
