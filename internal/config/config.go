package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	UploadDir        string
	MaxFileSizeBytes int64

	// InferenceBackend selects which remote model family serves
	// classification, QA and summarization: "huggingface" or "openrouter".
	InferenceBackend string

	HFAPIKey        string
	HFBaseURL       string
	HFQAModel       string
	HFSummaryModel  string
	HFZeroShotModel string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
	OpenRouterReferer string
	OpenRouterTitle   string

	OCRDPI        int
	OCRMaxPages   int
	TesseractLang string
	PdftoppmPath  string

	RetryMaxAttempts    int
	RetryBackoffSeconds int
	BreakerEnabled      bool

	CacheTTLHours int
}

const (
	BackendHuggingFace = "huggingface"
	BackendOpenRouter  = "openrouter"
)

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		UploadDir:        mustEnv("UPLOAD_DIR", "./data/uploads"),
		MaxFileSizeBytes: int64(mustEnvInt("MAX_FILE_SIZE_BYTES", 16<<20)),

		InferenceBackend: mustEnv("INFERENCE_BACKEND", BackendHuggingFace),

		HFAPIKey:        mustEnv("HF_API_KEY", ""),
		HFBaseURL:       mustEnv("HF_BASE_URL", ""),
		HFQAModel:       mustEnv("HF_QA_MODEL", ""),
		HFSummaryModel:  mustEnv("HF_SUMMARY_MODEL", ""),
		HFZeroShotModel: mustEnv("HF_ZERO_SHOT_MODEL", ""),

		OpenRouterAPIKey:  mustEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: mustEnv("OPENROUTER_BASE_URL", ""),
		OpenRouterModel:   mustEnv("OPENROUTER_MODEL", ""),
		OpenRouterReferer: mustEnv("OPENROUTER_REFERER", ""),
		OpenRouterTitle:   mustEnv("OPENROUTER_TITLE", ""),

		OCRDPI:        mustEnvInt("OCR_DPI", 300),
		OCRMaxPages:   mustEnvInt("OCR_MAX_PAGES", 0),
		TesseractLang: mustEnv("TESSERACT_LANG", "eng"),
		PdftoppmPath:  mustEnv("PDFTOPPM_PATH", "pdftoppm"),

		RetryMaxAttempts:    mustEnvInt("RETRY_MAX_ATTEMPTS", 3),
		RetryBackoffSeconds: mustEnvInt("RETRY_BACKOFF_SECONDS", 2),
		BreakerEnabled:      mustEnvBool("BREAKER_ENABLED", false),

		CacheTTLHours: mustEnvInt("CACHE_TTL_HOURS", 24),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
