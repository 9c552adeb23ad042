package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"resume-analyzer-backend/internal/domain"
	"resume-analyzer-backend/pkg/email"
	"resume-analyzer-backend/pkg/security"
	"resume-analyzer-backend/pkg/security/antivirus"
)

// Mock dependencies

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}

// extractorFunc adapts a function to usecase.TextExtractor
type extractorFunc func(ctx context.Context, filename string, data []byte) (string, error)

func (f extractorFunc) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	return f(ctx, filename, data)
}

type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Scan(ctx context.Context, filename string, data []byte) antivirus.ScanResult {
	return m.Called(ctx, filename, data).Get(0).(antivirus.ScanResult)
}

func (m *MockScanner) Name() string { return "mock" }

func (m *MockScanner) Available(ctx context.Context) bool { return true }

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockMailer) SendReportEmail(ctx context.Context, data email.ReportEmailData) error {
	return m.Called(ctx, data).Error(0)
}

type MockReportUsecase struct {
	mock.Mock
}

func (m *MockReportUsecase) SendReport(ctx context.Context, req *domain.ReportRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockReportUsecase) Export(ctx context.Context, req *domain.ExportRequest) ([]byte, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func nopSecurityLogger() *security.SecurityLogger {
	return security.NewSecurityLogger(zap.NewNop(), "resume-analyzer", "test")
}
