package v1

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"resume-analyzer-backend/internal/delivery/http/response"
	"resume-analyzer-backend/internal/domain"
)

var exportContentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv; charset=utf-8",
}

type ReportHandler struct {
	reportUC    domain.ReportUsecase
	maxUploadMB int64
}

func NewReportHandler(reportUC domain.ReportUsecase, maxUploadMB int64) *ReportHandler {
	return &ReportHandler{
		reportUC:    reportUC,
		maxUploadMB: maxUploadMB,
	}
}

// EmailReport godoc
// @Summary      Email Report
// @Description  Send the analysis report as an HTML email. The extracted text is truncated and escaped.
// @Tags         report
// @Accept       json
// @Produce      json
// @Param        report  body      domain.ReportRequest  true  "Report to send"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Failure      502     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Router       /email-report [post]
func (h *ReportHandler) EmailReport(c *gin.Context) {
	var req domain.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err, h.maxUploadMB))
		return
	}

	if err := h.reportUC.SendReport(c.Request.Context(), &req); err != nil {
		c.Error(toAppError(err, h.maxUploadMB))
		return
	}

	response.Success(c, http.StatusOK, "Email sent successfully", nil)
}

// ExportReport godoc
// @Summary      Export Report
// @Description  Download the analysis report as an Excel workbook (default) or CSV file.
// @Tags         report
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format  query     string                false  "xlsx or csv"  Enums(xlsx, csv)
// @Param        report  body      domain.ExportRequest  true   "Report to export"
// @Success      200     {file}    file
// @Failure      400     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Router       /export-report [post]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	var req domain.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err, h.maxUploadMB))
		return
	}
	req.Format = c.DefaultQuery("format", "xlsx")

	data, filename, err := h.reportUC.Export(c.Request.Context(), &req)
	if err != nil {
		c.Error(toAppError(err, h.maxUploadMB))
		return
	}

	contentType, ok := exportContentTypes[filepath.Ext(filename)]
	if !ok {
		contentType = "application/octet-stream"
	}
	response.Attachment(c, filename, contentType, data)
}
