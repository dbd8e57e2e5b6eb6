package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vkuzmin/visudoc/internal/config"
	"github.com/vkuzmin/visudoc/internal/core/domain"
	"github.com/vkuzmin/visudoc/internal/core/ports"
	"github.com/vkuzmin/visudoc/internal/core/usecase"
	"github.com/vkuzmin/visudoc/internal/infrastructure/docstore"
	"github.com/vkuzmin/visudoc/internal/infrastructure/fields"
	"github.com/vkuzmin/visudoc/internal/infrastructure/inference/huggingface"
	"github.com/vkuzmin/visudoc/internal/infrastructure/inference/openrouter"
	"github.com/vkuzmin/visudoc/internal/infrastructure/ocr"
	"github.com/vkuzmin/visudoc/internal/infrastructure/resilience"
	"github.com/vkuzmin/visudoc/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Store   ports.DocumentStore
	Files   ports.ObjectStorage
	Analyze ports.DocumentAnalyzer
	QA      ports.DocumentQA
	Summary ports.DocumentSummarizer
}

// New wires the pipeline for the configured inference backend. A missing
// credential for the selected backend fails here rather than on first use.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	files, err := localfs.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts: cfg.RetryMaxAttempts,
		RetryBackoffStep: time.Duration(cfg.RetryBackoffSeconds) * time.Second,
		BreakerEnabled:   cfg.BreakerEnabled,
	})

	classifier, qa, summarizer, err := buildInference(cfg, exec)
	if err != nil {
		return nil, err
	}

	recognizer := ocr.NewTesseractRecognizer(cfg.TesseractLang, cfg.OCRDPI)
	renderers := []ocr.PageRenderer{
		ocr.NewMuPDFRenderer(),
		ocr.NewPopplerRenderer(cfg.PdftoppmPath),
	}
	engine := ocr.NewEngine(ocr.Config{
		DPI:      cfg.OCRDPI,
		MaxPages: cfg.OCRMaxPages,
		Language: cfg.TesseractLang,
	}, recognizer, renderers, logger)

	extractor := fields.New()

	return &App{
		Config:  cfg,
		Store:   docstore.NewMemoryStore(),
		Files:   files,
		Analyze: usecase.NewAnalyzeDocumentUseCase(engine, classifier),
		QA:      usecase.NewAnswerQuestionUseCase(qa, classifier, extractor),
		Summary: usecase.NewSummarizeUseCase(summarizer, extractor),
	}, nil
}

func buildInference(cfg config.Config, exec *resilience.Executor) (
	ports.DocumentClassifier, ports.QuestionAnswerer, ports.TextSummarizer, error,
) {
	switch cfg.InferenceBackend {
	case config.BackendHuggingFace:
		client, err := huggingface.New(cfg.HFBaseURL, cfg.HFAPIKey, exec)
		if err != nil {
			return nil, nil, nil, err
		}
		return huggingface.NewClassifier(client, cfg.HFZeroShotModel),
			huggingface.NewQA(client, cfg.HFQAModel),
			huggingface.NewSummarizer(client, cfg.HFSummaryModel),
			nil
	case config.BackendOpenRouter:
		client, err := openrouter.New(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey,
			cfg.OpenRouterModel, cfg.OpenRouterReferer, cfg.OpenRouterTitle, exec)
		if err != nil {
			return nil, nil, nil, err
		}
		return openrouter.NewClassifier(client),
			openrouter.NewQA(client),
			openrouter.NewSummarizer(client),
			nil
	default:
		return nil, nil, nil, domain.WrapError(domain.ErrConfiguration, "select inference backend",
			errors.New("unknown backend "+cfg.InferenceBackend))
	}
}
