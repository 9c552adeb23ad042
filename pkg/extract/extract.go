// Package extract turns uploaded document bytes into plain text.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	// ErrExtraction marks documents whose bytes could not be turned into text.
	ErrExtraction = errors.New("extract: could not read document text")
	// ErrUnsupportedType marks documents of a type we do not parse.
	ErrUnsupportedType = errors.New("extract: unsupported document type")
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

const defaultTimeout = 20 * time.Second

// Extractor converts PDF, DOCX and plain text documents to text.
type Extractor struct {
	timeout time.Duration
	// extractFn parses one document by content type
	extractFn func(mime string, data []byte) (string, error)
}

// New returns an Extractor that gives up on a single document after timeout.
func New(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Extractor{timeout: timeout, extractFn: extractByType}
}

// DetectMIME sniffs the content type of data, ignoring parameters.
// Any text subtype is reported as text/plain.
func DetectMIME(data []byte) string {
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(MIMEText) {
			return MIMEText
		}
	}
	mime := detected.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return mime
}

type outcome struct {
	text string
	err  error
}

// Extract returns the plain text of data. The filename is only used in
// error messages.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrExtraction, filename)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	mime := DetectMIME(data)
	done := make(chan outcome, 1)
	go func() {
		text, err := e.extractFn(mime, data)
		done <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %s: %w", ErrExtraction, filename, ctx.Err())
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, ErrUnsupportedType) {
				return "", fmt.Errorf("%s: %w", filename, res.err)
			}
			return "", fmt.Errorf("%w: %s: %w", ErrExtraction, filename, res.err)
		}
		return res.text, nil
	}
}

func extractByType(mime string, data []byte) (text string, err error) {
	// The PDF parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()

	switch mime {
	case MIMEText:
		return string(data), nil
	case MIMEPDF:
		return extractPDF(data)
	case MIMEDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	xmlTag        = regexp.MustCompile(`<[^>]+>`)
	repeatedBlank = regexp.MustCompile(`[ \t]+`)
)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = xmlTag.ReplaceAllString(content, " ")
	content = repeatedBlank.ReplaceAllString(html.UnescapeString(content), " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
