package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resume-analyzer-backend/config"
	"resume-analyzer-backend/internal/delivery/http/response"
	"resume-analyzer-backend/internal/domain"
	"resume-analyzer-backend/internal/usecase"
	"resume-analyzer-backend/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = validation.RegisterGinValidators()
}

type MockAnalysisUsecase struct {
	mock.Mock
}

func (m *MockAnalysisUsecase) Analyze(ctx context.Context, req *domain.AnalyzeRequest) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
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

func testRouter(analysisUC domain.AnalysisUsecase, reportUC domain.ReportUsecase) *gin.Engine {
	cfg := &config.Config{
		AllowedOrigins:            []string{"*"},
		MaxUploadBytes:            1024 * 1024,
		RateLimitWindowSeconds:    60,
		RateLimitGlobalThreshold:  1000,
		RateLimitAnalyzeThreshold: 1000,
		RateLimitEmailThreshold:   1000,
	}
	return NewRouter(RouterDeps{
		AnalysisUC: analysisUC,
		ReportUC:   reportUC,
		HealthUC: usecase.NewHealthUsecase(map[string]usecase.HealthProbe{
			"redis": func(context.Context) string { return "disabled" },
		}),
		Taxonomy: domain.TaxonomyInfo{Skills: []string{"react"}, Experience: []string{"built"}, SkillWeight: 2, ExperienceWeight: 1, ScoringMode: "taxonomy", Origin: "builtin"},
		Config:   cfg,
	})
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, name := range files {
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func serve(r *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthAndTaxonomy(t *testing.T) {
	r := testRouter(new(MockAnalysisUsecase), new(MockReportUsecase))

	for _, prefix := range []string{"", "/v1"} {
		w := serve(r, http.MethodGet, prefix+"/health", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]interface{}{"status": "ok", "redis": "disabled"}, decode(t, w).Data)

		w = serve(r, http.MethodGet, prefix+"/taxonomy", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"skills":["react"]`)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := testRouter(new(MockAnalysisUsecase), new(MockReportUsecase))

	w := serve(r, http.MethodGet, "/v1/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "Route not found", resp.Message)
}

func TestAnalyze(t *testing.T) {
	t.Run("Should pass both documents and the email to the usecase", func(t *testing.T) {
		uc := new(MockAnalysisUsecase)
		uc.On("Analyze", mock.Anything, mock.MatchedBy(func(req *domain.AnalyzeRequest) bool {
			return req.Resume.Filename == "cv.pdf" &&
				string(req.Resume.Data) == "content of cv.pdf" &&
				req.JobDescription.Filename == "jd.txt" &&
				req.Email == "jane@example.com"
		})).Return(&domain.AnalysisResult{
			Message:         "Resume analyzed successfully!",
			ExtractedText:   "I built a React app",
			MatchPercentage: 60,
			MatchedWords:    []string{"react", "built"},
			MissingWords:    []string{"docker"},
		}, nil)
		r := testRouter(uc, new(MockReportUsecase))

		body, ct := multipartBody(t, map[string]string{"resume": "cv.pdf", "jobDescription": "jd.txt"}, map[string]string{"email": "jane@example.com"})
		w := serve(r, http.MethodPost, "/v1/analyze", body, ct)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, "Resume analyzed successfully!", resp.Message)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(60), data["matchPercentage"])
		assert.Equal(t, []interface{}{"docker"}, data["missingWords"])
		uc.AssertExpectations(t)
	})

	t.Run("Should hand a missing document to the usecase as nil", func(t *testing.T) {
		uc := new(MockAnalysisUsecase)
		uc.On("Analyze", mock.Anything, mock.MatchedBy(func(req *domain.AnalyzeRequest) bool {
			return req.Resume != nil && req.JobDescription == nil
		})).Return(nil, domain.ErrMissingDocument)
		r := testRouter(uc, new(MockReportUsecase))

		body, ct := multipartBody(t, map[string]string{"resume": "cv.pdf"}, nil)
		w := serve(r, http.MethodPost, "/analyze", body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Both resume and job description files are required.", decode(t, w).Message)
	})

	t.Run("Should reject an invalid email before analysing", func(t *testing.T) {
		uc := new(MockAnalysisUsecase)
		r := testRouter(uc, new(MockReportUsecase))

		body, ct := multipartBody(t, map[string]string{"resume": "cv.pdf", "jd": "jd.pdf"}, map[string]string{"email": "nope"})
		w := serve(r, http.MethodPost, "/analyze", body, ct)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})

	t.Run("Should reject oversized bodies", func(t *testing.T) {
		uc := new(MockAnalysisUsecase)
		r := testRouter(uc, new(MockReportUsecase))

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("resume", "cv.pdf")
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte("a"), 4*1024*1024))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		w := serve(r, http.MethodPost, "/analyze", &buf, mw.FormDataContentType())
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "File too large (max 1MB).", decode(t, w).Message)
	})
}

func TestAnalyze_ErrorTranslation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"blank resume", &domain.DocumentError{Document: domain.DocumentResume, Err: domain.ErrBlankResume}, http.StatusUnprocessableEntity, "Could not read text from the resume PDF."},
		{"extraction", &domain.DocumentError{Document: domain.DocumentJobDescription, Err: domain.ErrExtraction}, http.StatusUnprocessableEntity, "Could not read text from the job description."},
		{"too large", &domain.DocumentError{Document: domain.DocumentResume, Err: domain.ErrPayloadTooLarge}, http.StatusRequestEntityTooLarge, "File too large (max 1MB)."},
		{"rejected type", &domain.DocumentError{Document: domain.DocumentResume, Reason: "file extension not allowed: .exe", Err: domain.ErrInvalidDocument}, http.StatusUnsupportedMediaType, "The resume file was rejected: file extension not allowed: .exe."},
		{"malware", &domain.DocumentError{Document: domain.DocumentResume, Err: domain.ErrInfectedDocument}, http.StatusUnprocessableEntity, "The resume file was rejected by the malware scan."},
		{"unexpected", assert.AnError, http.StatusInternalServerError, "An unexpected error occurred. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockAnalysisUsecase)
			uc.On("Analyze", mock.Anything, mock.Anything).Return(nil, tt.err)
			r := testRouter(uc, new(MockReportUsecase))

			body, ct := multipartBody(t, map[string]string{"resume": "cv.pdf", "jd": "jd.pdf"}, nil)
			w := serve(r, http.MethodPost, "/analyze", body, ct)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, decode(t, w).Message)
		})
	}
}

func TestEmailReport(t *testing.T) {
	t.Run("Should send a valid report", func(t *testing.T) {
		uc := new(MockReportUsecase)
		uc.On("SendReport", mock.Anything, mock.MatchedBy(func(req *domain.ReportRequest) bool {
			return req.Email == "jane@example.com" && req.MatchPercentage == 60
		})).Return(nil)
		r := testRouter(new(MockAnalysisUsecase), uc)

		body := bytes.NewBufferString(`{"email":"jane@example.com","extractedText":"I built a React app","matchPercentage":60,"matchedWords":["react"],"missingWords":["docker"]}`)
		w := serve(r, http.MethodPost, "/email-report", body, "application/json")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Email sent successfully", decode(t, w).Message)
	})

	t.Run("Should render validation messages", func(t *testing.T) {
		r := testRouter(new(MockAnalysisUsecase), new(MockReportUsecase))

		body := bytes.NewBufferString(`{"email":"jane@example.com","matchPercentage":140,"matchedWords":["Node.js"]}`)
		w := serve(r, http.MethodPost, "/v1/email-report", body, "application/json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		assert.Equal(t, "Invalid request body", resp.Message)
		assert.ElementsMatch(t, []interface{}{
			"Match percentage must be at most 100",
			"Matched keywords must contain lowercase words without punctuation",
		}, resp.Error)
	})

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing email", domain.ErrMissingEmail, http.StatusBadRequest, "Recipient email is required."},
		{"not configured", domain.ErrEmailNotConfigured, http.StatusServiceUnavailable, "Email service temporarily unavailable"},
		{"delivery failed", domain.ErrDeliveryFailed, http.StatusBadGateway, "Failed to send report email. Please try again later."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockReportUsecase)
			uc.On("SendReport", mock.Anything, mock.Anything).Return(tt.err)
			r := testRouter(new(MockAnalysisUsecase), uc)

			w := serve(r, http.MethodPost, "/email-report", bytes.NewBufferString(`{}`), "application/json")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, decode(t, w).Message)
		})
	}
}

func TestExportReport(t *testing.T) {
	t.Run("Should stream the file as an attachment", func(t *testing.T) {
		uc := new(MockReportUsecase)
		uc.On("Export", mock.Anything, mock.MatchedBy(func(req *domain.ExportRequest) bool {
			return req.Format == "csv" && req.MatchPercentage == 60
		})).Return([]byte("KEYWORD,CATEGORY,STATUS\n"), "resume_report_20261019_120000.csv", nil)
		r := testRouter(new(MockAnalysisUsecase), uc)

		w := serve(r, http.MethodPost, "/export-report?format=csv", bytes.NewBufferString(`{"matchPercentage":60}`), "application/json")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="resume_report_20261019_120000.csv"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "KEYWORD,CATEGORY,STATUS\n", w.Body.String())
	})

	t.Run("Should default to xlsx", func(t *testing.T) {
		uc := new(MockReportUsecase)
		uc.On("Export", mock.Anything, mock.MatchedBy(func(req *domain.ExportRequest) bool {
			return req.Format == "xlsx"
		})).Return([]byte("PK"), "resume_report.xlsx", nil)
		r := testRouter(new(MockAnalysisUsecase), uc)

		w := serve(r, http.MethodPost, "/v1/export-report", bytes.NewBufferString(`{}`), "application/json")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, exportContentTypes[".xlsx"], w.Header().Get("Content-Type"))
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		uc := new(MockReportUsecase)
		uc.On("Export", mock.Anything, mock.Anything).Return(nil, "", domain.ErrUnsupportedFormat)
		r := testRouter(new(MockAnalysisUsecase), uc)

		w := serve(r, http.MethodPost, "/export-report?format=pdf", bytes.NewBufferString(`{}`), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
