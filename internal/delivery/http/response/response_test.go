package response

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-backend/internal/domain"
)

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestSuccess_UsesGinRequestID(t *testing.T) {
	c, w := newContext(httptest.NewRequest(http.MethodGet, "/health", nil))
	c.Set("RequestID", "req-gin")

	Success(c, http.StatusOK, "System operational", gin.H{"status": "ok"})

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "req-gin", body.RequestID)
}

func TestError_FallsBackToContextRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req = req.WithContext(context.WithValue(req.Context(), domain.KeyRequestID, "req-ctx"))
	c, w := newContext(req)

	Error(c, http.StatusBadRequest, "Both resume and job description files are required.", nil)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "req-ctx", body.RequestID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttachment(t *testing.T) {
	c, w := newContext(httptest.NewRequest(http.MethodPost, "/export-report", nil))

	Attachment(c, "resume_report.csv", "text/csv; charset=utf-8", []byte("KEYWORD\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="resume_report.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "KEYWORD\n", w.Body.String())
}
