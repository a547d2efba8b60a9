package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port                   string
	Env                    string
	CORSAllowOrigin        []string
	ObjectStoreType        string
	LocalStoreDir          string
	AWSRegion              string
	S3Bucket               string
	S3Prefix               string
	SSEKMSKeyID            string
	LLMProvider            string
	LLMModel               string
	OpenAIAPIKey           string
	OpenAIBaseURL          string
	LatexBin               string
	LatexTimeout           time.Duration
	ResumeTemplatePath     string
	ProfilePath            string
	MaxJobDescriptionChars int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:                   getEnv("PORT", "8080"),
		Env:                    normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:        splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType:        strings.ToLower(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:          getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:              getEnv("AWS_REGION", ""),
		S3Bucket:               getEnv("S3_BUCKET", ""),
		S3Prefix:               getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:            getEnv("SSE_KMS_KEY_ID", ""),
		LLMProvider:            getEnv("LLM_PROVIDER", "openai"),
		LLMModel:               getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:          getEnv("OPENAI_BASE_URL", ""),
		LatexBin:               getEnv("LATEX_BIN", "pdflatex"),
		LatexTimeout:           getDurationSeconds("LATEX_TIMEOUT_SECONDS", 60*time.Second),
		ResumeTemplatePath:     getEnv("RESUME_TEMPLATE_PATH", "./data/current_resume.tex"),
		ProfilePath:            getEnv("PROFILE_PATH", "./data/detailed_resume.json"),
		MaxJobDescriptionChars: getInt("MAX_JOB_DESCRIPTION_CHARS", 20000),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getDurationSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
