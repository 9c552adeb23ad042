package domain

import (
	"context"
	"errors"
	"fmt"
)

// Document names used in error messages
const (
	DocumentResume         = "resume"
	DocumentJobDescription = "job description"
)

var (
	ErrMissingDocument    = errors.New("both resume and job description files are required")
	ErrMissingEmail       = errors.New("recipient email is required")
	ErrInvalidDocument    = errors.New("document rejected")
	ErrInfectedDocument   = fmt.Errorf("%w: malware detected", ErrInvalidDocument)
	ErrExtraction         = errors.New("could not read text from document")
	ErrBlankResume        = errors.New("resume contains no readable text")
	ErrPayloadTooLarge    = errors.New("document exceeds upload limit")
	ErrDeliveryFailed     = errors.New("report email delivery failed")
	ErrEmailNotConfigured = errors.New("email service is not configured")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
)

// DocumentError ties a failure to the uploaded document that caused it.
type DocumentError struct {
	Document string // DocumentResume or DocumentJobDescription
	Reason   string
	Err      error // one of the sentinels above
}

func (e *DocumentError) Error() string {
	if e.Reason == "" {
		return e.Document + ": " + e.Err.Error()
	}
	return e.Document + ": " + e.Reason
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Document is an uploaded file as received from the multipart form
type Document struct {
	Filename string
	Data     []byte
	Size     int64
}

type AnalyzeRequest struct {
	Resume         *Document
	JobDescription *Document
	// Optional; when set the report is emailed after scoring
	Email string
}

type AnalysisResult struct {
	Message         string   `json:"message"`
	ExtractedText   string   `json:"extractedText"`
	HighlightedHTML string   `json:"highlightedHtml"`
	MatchPercentage int      `json:"matchPercentage"`
	MatchedWords    []string `json:"matchedWords"`
	MissingWords    []string `json:"missingWords"`
	ReportEmailed   bool     `json:"reportEmailed"`
}

// ReportRequest is the body of POST /email-report
type ReportRequest struct {
	Email           string   `json:"email" binding:"omitempty,email,max=254"`
	ExtractedText   string   `json:"extractedText"`
	MatchPercentage int      `json:"matchPercentage" binding:"min=0,max=100"`
	MatchedWords    []string `json:"matchedWords" binding:"max=500,dive,keyword_token"`
	MissingWords    []string `json:"missingWords" binding:"max=500,dive,keyword_token"`
}

// ExportRequest is the body of POST /export-report; Format comes from the query string
type ExportRequest struct {
	Title           string   `json:"title" binding:"omitempty,max=120,no_emoji"`
	MatchPercentage int      `json:"matchPercentage" binding:"min=0,max=100"`
	MatchedWords    []string `json:"matchedWords" binding:"max=500,dive,keyword_token"`
	MissingWords    []string `json:"missingWords" binding:"max=500,dive,keyword_token"`
	Format          string   `json:"-"`
}

// TaxonomyInfo describes the keyword taxonomy currently in use
type TaxonomyInfo struct {
	Skills           []string `json:"skills"`
	Experience       []string `json:"experience"`
	SkillWeight      int      `json:"skillWeight"`
	ExperienceWeight int      `json:"experienceWeight"`
	ScoringMode      string   `json:"scoringMode"`
	Origin           string   `json:"origin"`
}

type AnalysisUsecase interface {
	// Analyze extracts both documents and scores the resume against the job description
	Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalysisResult, error)
}

type ReportUsecase interface {
	// SendReport emails the formatted report to req.Email
	SendReport(ctx context.Context, req *ReportRequest) error
	// Export renders the report as xlsx or csv and returns the file name
	Export(ctx context.Context, req *ExportRequest) ([]byte, string, error)
}
