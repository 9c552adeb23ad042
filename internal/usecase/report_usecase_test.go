package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"resume-analyzer-backend/internal/domain"
	"resume-analyzer-backend/internal/matcher"
	"resume-analyzer-backend/internal/usecase"
	"resume-analyzer-backend/pkg/email"
)

func TestSendReport(t *testing.T) {
	req := &domain.ReportRequest{
		Email:           "jane@example.com",
		ExtractedText:   "I built a React app",
		MatchPercentage: 60,
		MatchedWords:    []string{"react", "built"},
		MissingWords:    []string{"docker"},
	}

	t.Run("Should require a recipient", func(t *testing.T) {
		uc := usecase.NewReportUsecase(new(MockMailer), nil, nopSecurityLogger())
		err := uc.SendReport(context.Background(), &domain.ReportRequest{Email: "  "})
		assert.ErrorIs(t, err, domain.ErrMissingEmail)
	})

	t.Run("Should fail when SMTP is not configured", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(false)

		err := usecase.NewReportUsecase(mailer, nil, nopSecurityLogger()).SendReport(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrEmailNotConfigured)
		mailer.AssertNotCalled(t, "SendReportEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should pass the report through to the mailer", func(t *testing.T) {
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(true)
		mailer.On("SendReportEmail", mock.Anything, email.ReportEmailData{
			Recipient:       "jane@example.com",
			MatchPercentage: 60,
			MatchedWords:    []string{"react", "built"},
			MissingWords:    []string{"docker"},
			ExtractedText:   "I built a React app",
		}).Return(nil)

		err := usecase.NewReportUsecase(mailer, nil, nopSecurityLogger()).SendReport(context.Background(), req)
		require.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("Should wrap transport failures as delivery errors", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		mailer := new(MockMailer)
		mailer.On("IsConfigured").Return(true)
		mailer.On("SendReportEmail", mock.Anything, mock.Anything).Return(cause)

		err := usecase.NewReportUsecase(mailer, nil, nopSecurityLogger()).SendReport(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrDeliveryFailed)
		assert.ErrorIs(t, err, cause)
	})
}

func TestExport(t *testing.T) {
	tax, err := matcher.NewTaxonomy([]string{"react", "docker", "lead"}, []string{"built", "lead"})
	require.NoError(t, err)
	uc := usecase.NewReportUsecase(nil, tax, nopSecurityLogger())

	req := func(format string) *domain.ExportRequest {
		return &domain.ExportRequest{
			Title:           "Frontend role",
			MatchPercentage: 60,
			MatchedWords:    []string{"react", "lead"},
			MissingWords:    []string{"docker"},
			Format:          format,
		}
	}

	t.Run("Should write CSV rows", func(t *testing.T) {
		data, filename, err := uc.Export(context.Background(), req("CSV"))
		require.NoError(t, err)
		assert.Regexp(t, `^resume_report_\d{8}_\d{6}\.csv$`, filename)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"KEYWORD", "CATEGORY", "STATUS"},
			{"MATCH SCORE", "", "60%"},
			{"react", "skill", "MATCHED"},
			{"lead", "skill, experience", "MATCHED"},
			{"docker", "skill", "MISSING"},
		}, records)
	})

	t.Run("Should default to an Excel workbook", func(t *testing.T) {
		data, filename, err := uc.Export(context.Background(), req(""))
		require.NoError(t, err)
		assert.Regexp(t, `\.xlsx$`, filename)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Report")
		require.NoError(t, err)
		require.Len(t, rows, 5)
		assert.Equal(t, []string{"KEYWORD", "CATEGORY", "STATUS"}, rows[0])
		assert.Equal(t, []string{"docker", "skill", "MISSING"}, rows[4])

		props, err := f.GetDocProps()
		require.NoError(t, err)
		assert.Equal(t, "Frontend role", props.Title)
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, _, err := uc.Export(context.Background(), req("pdf"))
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), "pdf")
	})
}

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]usecase.HealthProbe{
		"redis": func(context.Context) string { return "disabled" },
		"email": func(context.Context) string { return "configured" },
	})

	assert.Equal(t, map[string]string{
		"status": "ok",
		"redis":  "disabled",
		"email":  "configured",
	}, uc.Check(context.Background()))
}
