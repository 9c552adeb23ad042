package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analyzer-backend/internal/delivery/http/response"
	"resume-analyzer-backend/internal/domain"
)

// Multipart field names; jobDescription is accepted as an alias of jd
const (
	fieldResume            = "resume"
	fieldJobDescription    = "jd"
	fieldJobDescriptionAlt = "jobDescription"
)

type analyzeForm struct {
	Email string `form:"email" binding:"omitempty,email,max=254"`
}

type AnalysisHandler struct {
	analysisUC     domain.AnalysisUsecase
	maxUploadBytes int64
	// flat writes the bare AnalysisResult instead of the envelope
	flat bool
}

func NewAnalysisHandler(analysisUC domain.AnalysisUsecase, maxUploadBytes int64) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUC:     analysisUC,
		maxUploadBytes: maxUploadBytes,
	}
}

// Flat returns a copy of h that answers with the bare AnalysisResult, the
// shape the web client reads from the root mount. Errors keep the envelope,
// whose top-level message the client shows.
func (h *AnalysisHandler) Flat() *AnalysisHandler {
	cp := *h
	cp.flat = true
	return &cp
}

func (h *AnalysisHandler) maxUploadMB() int64 {
	return h.maxUploadBytes / (1024 * 1024)
}

// Analyze godoc
// @Summary      Analyze Resume
// @Description  Upload a resume and a job description (PDF, DOCX or TXT). Returns the keyword match score, matched and missing keywords, and the extracted resume text. When email is set the report is also emailed.
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file    true   "Resume document"
// @Param        jd      formData  file    true   "Job description document (alias: jobDescription)"
// @Param        email   formData  string  false  "Send the report to this address"
// @Success      200     {object}  response.Response{data=domain.AnalysisResult}
// @Failure      400     {object}  response.Response
// @Failure      413     {object}  response.Response
// @Failure      415     {object}  response.Response
// @Failure      422     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Router       /analyze [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var form analyzeForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(bindError(err, h.maxUploadMB()))
		return
	}

	resume, err := h.readDocument(c, fieldResume)
	if err != nil {
		c.Error(err)
		return
	}
	jd, err := h.readDocument(c, fieldJobDescription, fieldJobDescriptionAlt)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.analysisUC.Analyze(c.Request.Context(), &domain.AnalyzeRequest{
		Resume:         resume,
		JobDescription: jd,
		Email:          form.Email,
	})
	if err != nil {
		c.Error(toAppError(err, h.maxUploadMB()))
		return
	}

	if h.flat {
		c.JSON(http.StatusOK, result)
		return
	}
	response.Success(c, http.StatusOK, result.Message, result)
}

// readDocument loads the first present field. A missing field yields a nil
// document so the usecase reports which input is absent.
func (h *AnalysisHandler) readDocument(c *gin.Context, fields ...string) (*domain.Document, error) {
	var (
		header *multipart.FileHeader
		err    error
	)
	for _, field := range fields {
		header, err = c.FormFile(field)
		if err == nil {
			break
		}
	}
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, bindError(err, h.maxUploadMB())
	}

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		return nil, toAppError(domain.ErrPayloadTooLarge, h.maxUploadMB())
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", header.Filename, err)
	}

	return &domain.Document{
		Filename: header.Filename,
		Data:     data,
		Size:     header.Size,
	}, nil
}
