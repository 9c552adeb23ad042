package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"resume-analyzer-backend/config"
)

// ReportSubject is the subject line of every report email.
const ReportSubject = "Your AI Resume Analyzer Report"

// emptyListPlaceholder stands in for an empty keyword list.
const emptyListPlaceholder = "—"

// SendFunc matches smtp.SendMail; tests swap it out.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles sending emails via SMTP
type EmailService struct {
	host         string
	port         string
	username     string
	password     string
	fromEmail    string
	previewLimit int
	send         SendFunc
}

// ReportEmailData holds the data rendered into the report email
type ReportEmailData struct {
	Recipient       string
	MatchPercentage int
	MatchedWords    []string
	MissingWords    []string
	ExtractedText   string
}

// NewEmailService creates a new email service from the SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &EmailService{
		host:         cfg.SMTPHost,
		port:         cfg.SMTPPort,
		username:     cfg.SMTPUsername,
		password:     cfg.SMTPPassword,
		fromEmail:    from,
		previewLimit: cfg.ReportPreviewLimit,
		send:         smtp.SendMail,
	}
}

// WithSender replaces the SMTP transport.
func (s *EmailService) WithSender(fn SendFunc) *EmailService {
	s.send = fn
	return s
}

// reportEmailTemplate is the HTML template for analysis reports.
// html/template escapes the extracted text.
const reportEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>AI Resume Analyzer Report</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .score { font-size: 18px; }
        pre { white-space: pre-wrap; background: #f9f9f9; padding: 15px; border-left: 4px solid #0066cc; }
    </style>
</head>
<body>
    <div class="container">
        <h2>AI Resume Analyzer Report</h2>
        <p class="score"><strong>Match Score:</strong> {{.MatchPercentage}}%</p>
        <h3>Matched Keywords</h3>
        <p>{{joinWords .MatchedWords}}</p>
        <h3>Missing Keywords</h3>
        <p>{{joinWords .MissingWords}}</p>
        <h3>Extracted Resume Text</h3>
        <pre>{{.ExtractedText}}</pre>
    </div>
</body>
</html>`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"joinWords": joinWords,
}).Parse(reportEmailTemplate))

func joinWords(words []string) string {
	if len(words) == 0 {
		return emptyListPlaceholder
	}
	return strings.Join(words, ", ")
}

// truncateRunes keeps at most limit characters; limit <= 0 keeps everything.
func truncateRunes(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// RenderReport renders the report body with the extracted text cut to previewLimit characters.
func RenderReport(data ReportEmailData, previewLimit int) (string, error) {
	data.ExtractedText = truncateRunes(data.ExtractedText, previewLimit)

	var body bytes.Buffer
	if err := reportTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// SendReportEmail renders and sends the analysis report to data.Recipient
func (s *EmailService) SendReportEmail(ctx context.Context, data ReportEmailData) error {
	body, err := RenderReport(data, s.previewLimit)
	if err != nil {
		return err
	}

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		data.Recipient,
		ReportSubject,
		body,
	))

	// net/smtp has no context support; honour cancellation before dialing
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{data.Recipient}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
