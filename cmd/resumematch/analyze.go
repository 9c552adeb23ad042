package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resume-analyzer-backend/internal/domain"
	"resume-analyzer-backend/internal/matcher"
	"resume-analyzer-backend/internal/taxonomy"
	"resume-analyzer-backend/internal/usecase"
	"resume-analyzer-backend/pkg/extract"
	"resume-analyzer-backend/pkg/security"
	"resume-analyzer-backend/pkg/security/antivirus"
)

type analyzeOptions struct {
	resume    string
	jd        string
	format    string
	timeout   time.Duration
	maxMB     int64
	clamav    string
	highlight bool
}

type analyzeOutput struct {
	Resume string              `json:"resume"`
	JD     string              `json:"jd"`
	Mode   matcher.ScoringMode `json:"scoringMode"`
	*domain.AnalysisResult
	Highlighted string `json:"highlighted,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against a job description",
		Long:  "Runs the same size, type, malware and extraction checks as the API server, reading both documents concurrently, then scores them.",
		Example: `  resumematch analyze --resume cv.pdf --jd posting.txt
  resumematch analyze --resume cv.docx --jd posting.pdf --format json --mode posting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Path to the resume (PDF, DOCX or TXT)")
	cmd.Flags().StringVarP(&opts.jd, "jd", "j", "", "Path to the job description (PDF, DOCX or TXT)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 20*time.Second, "Extraction timeout per document")
	cmd.Flags().Int64Var(&opts.maxMB, "max-mb", 10, "Size ceiling per document in megabytes")
	cmd.Flags().StringVar(&opts.clamav, "clamav", os.Getenv("CLAMAV_ADDRESS"), "clamd address for malware scanning (empty disables)")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "Print the resume with matched keywords marked")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("jd")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (use text or json)", opts.format)
	}

	loaded, err := loadTaxonomy(cmd)
	if err != nil {
		return err
	}

	resume, err := readDocument(opts.resume)
	if err != nil {
		return err
	}
	jd, err := readDocument(opts.jd)
	if err != nil {
		return err
	}

	// The security log goes nowhere; rejections surface as the command error
	analysisUC := usecase.NewAnalysisUsecase(
		extract.New(opts.timeout),
		antivirus.New(opts.clamav),
		loaded.Matcher(),
		nil,
		opts.maxMB*1024*1024,
		security.NewSecurityLogger(zap.NewNop(), "resumematch", "cli"),
	)
	result, err := analysisUC.Analyze(cmd.Context(), &domain.AnalyzeRequest{
		Resume:         resume,
		JobDescription: jd,
	})
	if err != nil {
		return err
	}

	out := analyzeOutput{
		Resume:         opts.resume,
		JD:             opts.jd,
		Mode:           loaded.Mode,
		AnalysisResult: result,
	}
	if opts.highlight {
		out.Highlighted = matcher.Highlight(result.ExtractedText, result.MatchedWords)
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	writeText(cmd.OutOrStdout(), out)
	return nil
}

func readDocument(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &domain.Document{
		Filename: filepath.Base(path),
		Data:     data,
		Size:     int64(len(data)),
	}, nil
}

func writeText(w io.Writer, out analyzeOutput) {
	fmt.Fprintf(w, "Match score: %d%% (%s scoring)\n", out.MatchPercentage, out.Mode)
	fmt.Fprintf(w, "Matched:     %s\n", joinOrDash(out.MatchedWords))
	fmt.Fprintf(w, "Missing:     %s\n", joinOrDash(out.MissingWords))
	if out.Highlighted != "" {
		fmt.Fprintf(w, "\n%s\n", out.Highlighted)
	}
}

func joinOrDash(words []string) string {
	if len(words) == 0 {
		return "—"
	}
	return strings.Join(words, ", ")
}

// loadTaxonomy resolves the --taxonomy and --mode persistent flags.
func loadTaxonomy(cmd *cobra.Command) (*taxonomy.Loaded, error) {
	file, _ := cmd.Flags().GetString("taxonomy")
	mode, _ := cmd.Flags().GetString("mode")
	return taxonomy.Load(cmd.Context(), taxonomy.Source{File: file, Mode: mode}, nil)
}
