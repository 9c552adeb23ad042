package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"resume-analyzer-backend/internal/domain"
	"resume-analyzer-backend/internal/matcher"
	"resume-analyzer-backend/pkg/extract"
	"resume-analyzer-backend/pkg/logger"
	"resume-analyzer-backend/pkg/security"
	"resume-analyzer-backend/pkg/security/antivirus"
)

const (
	msgAnalyzed        = "Resume analyzed successfully!"
	msgAnalyzedEmailed = "Resume analyzed successfully! The report was sent to your email."
	msgAnalyzedNoEmail = "Resume analyzed successfully, but the report email could not be sent."
)

// TextExtractor turns uploaded bytes into plain text
type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

type analysisUsecase struct {
	extractor      TextExtractor
	scanner        antivirus.Scanner
	matcher        *matcher.Matcher
	reports        domain.ReportUsecase
	maxUploadBytes int64
	secLog         *security.SecurityLogger
}

// NewAnalysisUsecase wires the analysis pipeline. reports may be nil when
// emailing from /analyze is not wanted.
func NewAnalysisUsecase(
	extractor TextExtractor,
	scanner antivirus.Scanner,
	m *matcher.Matcher,
	reports domain.ReportUsecase,
	maxUploadBytes int64,
	secLog *security.SecurityLogger,
) domain.AnalysisUsecase {
	if scanner == nil {
		scanner = antivirus.NewNoOpScanner()
	}
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	return &analysisUsecase{
		extractor:      extractor,
		scanner:        scanner,
		matcher:        m,
		reports:        reports,
		maxUploadBytes: maxUploadBytes,
		secLog:         secLog,
	}
}

func (u *analysisUsecase) Analyze(ctx context.Context, req *domain.AnalyzeRequest) (*domain.AnalysisResult, error) {
	if req == nil || missing(req.Resume) || missing(req.JobDescription) {
		return nil, domain.ErrMissingDocument
	}

	// Both documents must be read; the first failure cancels the other
	var resumeText, jdText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resumeText, err = u.readDocument(gctx, domain.DocumentResume, req.Resume)
		return err
	})
	g.Go(func() (err error) {
		jdText, err = u.readDocument(gctx, domain.DocumentJobDescription, req.JobDescription)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(resumeText) == "" {
		return nil, &domain.DocumentError{Document: domain.DocumentResume, Err: domain.ErrBlankResume}
	}

	match := u.matcher.Match(resumeText, jdText)
	result := &domain.AnalysisResult{
		Message:         msgAnalyzed,
		ExtractedText:   resumeText,
		HighlightedHTML: matcher.HighlightHTML(resumeText, match.MatchedWords),
		MatchPercentage: match.MatchPercentage,
		MatchedWords:    match.MatchedWords,
		MissingWords:    match.MissingWords,
	}

	if email := strings.TrimSpace(req.Email); email != "" && u.reports != nil {
		err := u.reports.SendReport(ctx, &domain.ReportRequest{
			Email:           email,
			ExtractedText:   resumeText,
			MatchPercentage: match.MatchPercentage,
			MatchedWords:    match.MatchedWords,
			MissingWords:    match.MissingWords,
		})
		if err != nil {
			// Scoring succeeded; a mail problem only downgrades the response
			logger.Log.Warn("Report email failed after analysis",
				"request_id", domain.RequestIDFrom(ctx),
				"error", err,
			)
			result.Message = msgAnalyzedNoEmail
		} else {
			result.Message = msgAnalyzedEmailed
			result.ReportEmailed = true
		}
	}

	logger.Log.Info("Resume analyzed",
		"request_id", domain.RequestIDFrom(ctx),
		"match_percentage", match.MatchPercentage,
		"matched", len(match.MatchedWords),
		"missing", len(match.MissingWords),
	)
	return result, nil
}

func missing(doc *domain.Document) bool {
	return doc == nil || doc.Filename == "" || doc.Data == nil
}

// readDocument runs the size, type and malware checks, then extracts text.
func (u *analysisUsecase) readDocument(ctx context.Context, name string, doc *domain.Document) (string, error) {
	requestID := domain.RequestIDFrom(ctx)

	size := doc.Size
	if size < int64(len(doc.Data)) {
		size = int64(len(doc.Data))
	}
	if u.maxUploadBytes > 0 && size > u.maxUploadBytes {
		u.secLog.LogDocumentRejected(ctx, security.EventPayloadTooLarge, doc.Filename, fmt.Sprintf("%d bytes", size), requestID)
		return "", &domain.DocumentError{Document: name, Err: domain.ErrPayloadTooLarge}
	}

	// An empty file has no content to sniff; it is unreadable, not spoofed
	if len(doc.Data) == 0 {
		return "", &domain.DocumentError{Document: name, Err: fmt.Errorf("%w: %s is empty", domain.ErrExtraction, doc.Filename)}
	}

	validation := security.ValidateFile(doc.Filename, doc.Data, extract.DetectMIME(doc.Data))
	if !validation.Valid {
		u.secLog.LogDocumentRejected(ctx, security.EventDocumentRejected, doc.Filename, validation.Error, requestID)
		return "", &domain.DocumentError{Document: name, Reason: validation.Error, Err: domain.ErrInvalidDocument}
	}

	scan := u.scanner.Scan(ctx, doc.Filename, doc.Data)
	if scan.Rejected() {
		reason := scan.ThreatName
		if scan.Error != nil {
			reason = scan.Error.Error()
		}
		u.secLog.LogDocumentRejected(ctx, security.EventMalwareDetected, doc.Filename, reason, requestID)
		return "", &domain.DocumentError{Document: name, Reason: "file failed the malware scan", Err: domain.ErrInfectedDocument}
	}

	text, err := u.extractor.Extract(ctx, doc.Filename, doc.Data)
	if err != nil {
		logger.Log.Warn("Text extraction failed",
			"request_id", requestID,
			"document", name,
			"error", err,
		)
		if errors.Is(err, extract.ErrUnsupportedType) {
			return "", &domain.DocumentError{Document: name, Reason: "unsupported document type", Err: domain.ErrInvalidDocument}
		}
		return "", &domain.DocumentError{Document: name, Err: fmt.Errorf("%w: %w", domain.ErrExtraction, err)}
	}
	return text, nil
}
