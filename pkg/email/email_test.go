package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-backend/config"
)

func testConfig() *config.Config {
	return &config.Config{
		SMTPHost:           "smtp.example.com",
		SMTPPort:           "587",
		SMTPUsername:       "reports@example.com",
		SMTPPassword:       "secret",
		ReportPreviewLimit: 6000,
	}
}

func TestRenderReport(t *testing.T) {
	t.Run("Should join keywords and show the score", func(t *testing.T) {
		body, err := RenderReport(ReportEmailData{
			MatchPercentage: 60,
			MatchedWords:    []string{"react", "javascript"},
			MissingWords:    []string{"docker"},
			ExtractedText:   "I built a React app",
		}, 6000)
		require.NoError(t, err)

		assert.Contains(t, body, "60%")
		assert.Contains(t, body, "<p>react, javascript</p>")
		assert.Contains(t, body, "<p>docker</p>")
		assert.Contains(t, body, "I built a React app")
	})

	t.Run("Should use a placeholder for empty lists", func(t *testing.T) {
		body, err := RenderReport(ReportEmailData{}, 6000)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(body, "<p>—</p>"))
	})

	t.Run("Should escape the extracted text", func(t *testing.T) {
		body, err := RenderReport(ReportEmailData{ExtractedText: "<script>alert(1)</script> & co"}, 6000)
		require.NoError(t, err)
		assert.NotContains(t, body, "<script>")
		assert.Contains(t, body, "&lt;script&gt;")
		assert.Contains(t, body, "&amp; co")
	})

	t.Run("Should truncate by characters", func(t *testing.T) {
		body, err := RenderReport(ReportEmailData{ExtractedText: "héllo wörld"}, 5)
		require.NoError(t, err)
		assert.Contains(t, body, "<pre>héllo</pre>")
	})
}

func TestSendReportEmail(t *testing.T) {
	t.Run("Should send to the recipient with the report subject", func(t *testing.T) {
		var gotAddr, gotFrom string
		var gotTo []string
		var gotMsg []byte
		svc := NewEmailService(testConfig()).WithSender(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		})

		err := svc.SendReportEmail(context.Background(), ReportEmailData{Recipient: "jane@example.com", MatchPercentage: 100})
		require.NoError(t, err)

		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, "reports@example.com", gotFrom)
		assert.Equal(t, []string{"jane@example.com"}, gotTo)
		assert.Contains(t, string(gotMsg), "Subject: "+ReportSubject+"\r\n")
		assert.Contains(t, string(gotMsg), "Content-Type: text/html; charset=UTF-8")
	})

	t.Run("Should wrap transport failures", func(t *testing.T) {
		cause := errors.New("535 auth failed")
		svc := NewEmailService(testConfig()).WithSender(func(string, smtp.Auth, string, []string, []byte) error {
			return cause
		})

		err := svc.SendReportEmail(context.Background(), ReportEmailData{Recipient: "jane@example.com"})
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Should not dial when the context is done", func(t *testing.T) {
		called := false
		svc := NewEmailService(testConfig()).WithSender(func(string, smtp.Auth, string, []string, []byte) error {
			called = true
			return nil
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := svc.SendReportEmail(ctx, ReportEmailData{Recipient: "jane@example.com"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, NewEmailService(testConfig()).IsConfigured())

	cfg := testConfig()
	cfg.SMTPPassword = ""
	assert.False(t, NewEmailService(cfg).IsConfigured())
}
