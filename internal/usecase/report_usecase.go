package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"resume-analyzer-backend/internal/domain"
	"resume-analyzer-backend/internal/matcher"
	"resume-analyzer-backend/pkg/email"
	"resume-analyzer-backend/pkg/logger"
	"resume-analyzer-backend/pkg/security"
)

const defaultReportTitle = "Resume Match Report"

// Mailer sends rendered report emails
type Mailer interface {
	IsConfigured() bool
	SendReportEmail(ctx context.Context, data email.ReportEmailData) error
}

type reportUsecase struct {
	mailer   Mailer
	taxonomy *matcher.Taxonomy
	secLog   *security.SecurityLogger
	now      func() time.Time
}

func NewReportUsecase(mailer Mailer, taxonomy *matcher.Taxonomy, secLog *security.SecurityLogger) domain.ReportUsecase {
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	return &reportUsecase{
		mailer:   mailer,
		taxonomy: taxonomy,
		secLog:   secLog,
		now:      time.Now,
	}
}

// SendReport validates the request and emails the report
func (u *reportUsecase) SendReport(ctx context.Context, req *domain.ReportRequest) error {
	recipient := strings.TrimSpace(req.Email)
	if recipient == "" {
		return domain.ErrMissingEmail
	}

	if u.mailer == nil || !u.mailer.IsConfigured() {
		return domain.ErrEmailNotConfigured
	}

	err := u.mailer.SendReportEmail(ctx, email.ReportEmailData{
		Recipient:       recipient,
		MatchPercentage: req.MatchPercentage,
		MatchedWords:    req.MatchedWords,
		MissingWords:    req.MissingWords,
		ExtractedText:   req.ExtractedText,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}

	u.secLog.LogReportSent(ctx, recipient, domain.RequestIDFrom(ctx))
	return nil
}

// reportRow is one line of an exported report
type reportRow struct {
	Keyword  string
	Category string
	Status   string
}

var reportHeaders = []string{"KEYWORD", "CATEGORY", "STATUS"}

// Export renders the report as an Excel workbook or CSV file
func (u *reportUsecase) Export(ctx context.Context, req *domain.ExportRequest) ([]byte, string, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))

	rows := make([]reportRow, 0, len(req.MatchedWords)+len(req.MissingWords)+1)
	rows = append(rows, reportRow{Keyword: "MATCH SCORE", Status: fmt.Sprintf("%d%%", req.MatchPercentage)})
	for _, w := range req.MatchedWords {
		rows = append(rows, reportRow{Keyword: w, Category: u.categoryOf(w), Status: "matched"})
	}
	for _, w := range req.MissingWords {
		rows = append(rows, reportRow{Keyword: w, Category: u.categoryOf(w), Status: "missing"})
	}

	var (
		data     []byte
		filename string
		err      error
	)
	switch format {
	case "csv":
		data, filename, err = u.exportCSV(rows)
	case "xlsx", "":
		data, filename, err = u.exportExcel(req.Title, rows)
	default:
		return nil, "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, req.Format)
	}
	if err != nil {
		return nil, "", err
	}

	logger.Log.Info("Report exported",
		"request_id", domain.RequestIDFrom(ctx),
		"file", filename,
		"rows", len(rows),
	)
	return data, filename, nil
}

func (u *reportUsecase) categoryOf(keyword string) string {
	if u.taxonomy == nil {
		return ""
	}
	cats := u.taxonomy.Categories(keyword)
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func (u *reportUsecase) filename(ext string) string {
	return fmt.Sprintf("resume_report_%s.%s", u.now().Format("20060102_150405"), ext)
}

// exportExcel generates an Excel file from the report rows
func (u *reportUsecase) exportExcel(title string, rows []reportRow) ([]byte, string, error) {
	if title == "" {
		title = defaultReportTitle
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Report"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}
	_ = f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "resume-analyzer"})

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Style headers - Dark Blue background with White text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		values := []string{row.Keyword, row.Category, strings.ToUpper(row.Status)}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "C", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), u.filename("xlsx"), nil
}

// exportCSV generates a CSV file from the report rows
func (u *reportUsecase) exportCSV(rows []reportRow) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write(reportHeaders)
	for _, row := range rows {
		_ = w.Write([]string{row.Keyword, row.Category, strings.ToUpper(row.Status)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), u.filename("csv"), nil
}
