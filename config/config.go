package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// Comma separated list of browser origins allowed by CORS
	AllowedOrigins []string
	SwaggerEnabled bool
	// Upload limits
	MaxUploadBytes    int64
	ExtractionTimeout time.Duration
	// Report
	ReportPreviewLimit int
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitGlobalThreshold  int
	RateLimitAnalyzeThreshold int
	RateLimitEmailThreshold   int
	// Antivirus (clamd address, empty disables scanning)
	ClamAVAddress string
	// Taxonomy sources, checked in order: S3 object, local file, built-in
	TaxonomyFile     string
	TaxonomyS3Bucket string
	TaxonomyS3Key    string
	ScoringMode      string
	// Use the built-in taxonomy when the configured source cannot be read
	TaxonomyFallback bool
	// S3-compatible storage
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

func LoadConfig() (*Config, error) {
	// Load .env file (local development only; ignored when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "5000"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "debug"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),
		// Upload limits (10MB per file like the web client expects)
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_MB", 10)) * 1024 * 1024,
		ExtractionTimeout:  getEnvDuration("EXTRACTION_TIMEOUT", 20*time.Second),
		ReportPreviewLimit: getEnvInt("REPORT_PREVIEW_LIMIT", 6000),
		// SMTP Configuration (EMAIL_USER / EMAIL_PASS kept for older deployments)
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", getEnv("EMAIL_USER", "")),
		SMTPPassword: getEnv("SMTP_PASSWORD", getEnv("EMAIL_PASS", "")),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitAnalyzeThreshold: getEnvInt("RATE_LIMIT_ANALYZE_THRESHOLD", 10),
		RateLimitEmailThreshold:   getEnvInt("RATE_LIMIT_EMAIL_THRESHOLD", 5),
		ClamAVAddress:             getEnv("CLAMAV_ADDRESS", ""),
		// Taxonomy
		TaxonomyFile:     getEnv("TAXONOMY_FILE", ""),
		TaxonomyS3Bucket: getEnv("TAXONOMY_S3_BUCKET", ""),
		TaxonomyS3Key:    getEnv("TAXONOMY_S3_KEY", "taxonomy.yaml"),
		ScoringMode:      getEnv("SCORING_MODE", "taxonomy"),
		TaxonomyFallback: getEnvBool("TAXONOMY_FALLBACK", false),
		// S3
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
	}
	// Sender defaults to the SMTP login (Gmail rewrites it anyway)
	cfg.SMTPFromEmail = getEnv("SMTP_FROM_EMAIL", cfg.SMTPUsername)

	if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Println("WARNING: SMTP credentials missing. Report emails will be unavailable.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// MaxUploadMB is the per-file ceiling in whole megabytes, for messages.
func (c *Config) MaxUploadMB() int64 {
	return c.MaxUploadBytes / (1024 * 1024)
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}
