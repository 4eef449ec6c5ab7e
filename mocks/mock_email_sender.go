package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portops/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendUrgeNotice(ctx context.Context, toEmail string, notice port.UrgeNotice) error {
	args := m.Called(ctx, toEmail, notice)
	return args.Error(0)
}

func (m *MockEmailSender) SendExportPlanNotice(ctx context.Context, toEmails []string, notice port.ExportPlanNotice) error {
	args := m.Called(ctx, toEmails, notice)
	return args.Error(0)
}
