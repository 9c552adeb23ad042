package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"resume-analyzer-backend/config"
	"resume-analyzer-backend/internal/delivery/http/middleware"
	"resume-analyzer-backend/internal/delivery/http/response"
	"resume-analyzer-backend/internal/domain"
	"resume-analyzer-backend/internal/usecase"
	"resume-analyzer-backend/pkg/apperror"
)

// multipartOverhead covers boundaries and the email field around two uploads
const multipartOverhead = 1 << 20

type RouterDeps struct {
	AnalysisUC domain.AnalysisUsecase
	ReportUC   domain.ReportUsecase
	HealthUC   usecase.HealthUsecase
	Taxonomy   domain.TaxonomyInfo
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg)))

	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("Route not found"))
	})

	analysis := NewAnalysisHandler(deps.AnalysisUC, cfg.MaxUploadBytes)
	reports := NewReportHandler(deps.ReportUC, cfg.MaxUploadMB())
	taxonomy := NewTaxonomyHandler(deps.Taxonomy)

	// One limiter per route, shared by the root and /v1 mounts
	analyzeLimit := middleware.RateLimitMiddleware(middleware.AnalyzeRateLimitConfig(cfg))
	emailLimit := middleware.RateLimitMiddleware(middleware.EmailRateLimitConfig(cfg))
	uploadBody := bodyLimit(2*cfg.MaxUploadBytes + multipartOverhead)
	jsonBody := bodyLimit(cfg.MaxUploadBytes)

	// Root mount serves the existing web client, which reads the analysis
	// fields at the top level; /v1 is the versioned API with the envelope
	mounts := []struct {
		group    *gin.RouterGroup
		analysis *AnalysisHandler
	}{
		{&r.RouterGroup, analysis.Flat()},
		{r.Group("/v1"), analysis},
	}
	for _, m := range mounts {
		g := m.group
		g.GET("/health", healthHandler(deps.HealthUC))
		g.GET("/taxonomy", taxonomy.GetTaxonomy)
		g.POST("/analyze", analyzeLimit, uploadBody, m.analysis.Analyze)
		g.POST("/email-report", emailLimit, jsonBody, reports.EmailReport)
		g.POST("/export-report", jsonBody, reports.ExportReport)

		if cfg.SwaggerEnabled {
			g.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		}
	}

	return r
}

// bodyLimit caps the request body; reads past the limit fail with
// *http.MaxBytesError.
func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// Health godoc
// @Summary      Health Check
// @Description  Report service status and the state of optional dependencies.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func healthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", healthUC.Check(c.Request.Context()))
	}
}
