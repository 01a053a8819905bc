package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/mkoval/legal-clause-analysis/internal/config"
	"github.com/mkoval/legal-clause-analysis/internal/core/ports"
	"github.com/mkoval/legal-clause-analysis/internal/core/usecase"
	"github.com/mkoval/legal-clause-analysis/internal/infrastructure/classify"
	"github.com/mkoval/legal-clause-analysis/internal/infrastructure/extractor/docx"
	"github.com/mkoval/legal-clause-analysis/internal/infrastructure/extractor/pdfex"
	"github.com/mkoval/legal-clause-analysis/internal/infrastructure/model"
	"github.com/mkoval/legal-clause-analysis/internal/infrastructure/risk"
	"github.com/mkoval/legal-clause-analysis/internal/infrastructure/segmenter"
	"github.com/mkoval/legal-clause-analysis/internal/infrastructure/storage/localfs"
	"github.com/mkoval/legal-clause-analysis/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Analyzer ports.DocumentAnalyzer
	Metrics  *metrics.HTTPServerMetrics
}

// New wires the analysis pipeline. Model artifacts are optional: a missing
// or broken artifact downgrades the matching phase to its sentinel output
// instead of preventing startup, so the service still accepts uploads.
func New(cfg config.Config) (*App, error) {
	store, err := localfs.New(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	classifierEngine := loadClassifierEngine(cfg.ClassifierPipelinePath)
	classMap := loadClassMap(cfg.ReferenceDatasetPath)
	riskEngine := loadRiskEngine(cfg.RiskModelPath, cfg.VectorizerPath)
	explainer := loadExplainer(cfg.ExplainerPath)
	lexicon := loadLexicon(cfg.RiskLexiconPath)

	extractors := map[string]ports.TextExtractor{
		"pdf":  pdfex.New(),
		"docx": docx.New(),
	}

	analyzer := usecase.NewAnalyzeDocumentUseCase(
		store,
		extractors,
		segmenter.New(cfg.MinClauseChars),
		classify.New(classifierEngine, classMap),
		risk.NewScorer(riskEngine, explainer, lexicon, cfg.TopFeatures),
	)

	return &App{
		Config:   cfg,
		Analyzer: analyzer,
		Metrics:  metrics.NewHTTPServerMetrics("api"),
	}, nil
}

func loadClassifierEngine(path string) *model.Engine {
	engine, err := model.LoadEngine(path, "")
	if err != nil {
		slog.Warn("clause classifier unavailable, phase 1 degraded", "path", path, "error", err)
		return nil
	}
	if !engine.Ready() {
		slog.Warn("classifier artifact has no embedded vectorizer, phase 1 degraded", "path", path)
		return nil
	}
	return engine
}

func loadClassMap(path string) map[int]string {
	classMap, err := model.LoadClassMap(path)
	if err != nil {
		slog.Warn("reference dataset unavailable, class codes reported numerically", "path", path, "error", err)
		return nil
	}
	return classMap
}

// loadRiskEngine keeps a partially loaded engine: a model without its
// vectorizer still fails Ready() and the scorer reports the not-loaded
// sentinel per clause.
func loadRiskEngine(modelPath, vectorizerPath string) *model.Engine {
	engine, err := model.LoadEngine(modelPath, vectorizerPath)
	if err != nil {
		slog.Warn("risk model incomplete, phase 3 degraded", "model", modelPath, "vectorizer", vectorizerPath, "error", err)
	}
	return engine
}

func loadExplainer(path string) *model.LinearExplainer {
	explainer, err := model.LoadExplainer(path)
	if err != nil {
		slog.Warn("risk explainer unavailable, justifications disabled", "path", path, "error", err)
		return nil
	}
	return explainer
}

func loadLexicon(path string) risk.Lexicon {
	lexicon, err := risk.LoadLexicon(path)
	if err != nil {
		slog.Warn("risk lexicon override not loaded, using built-in terms", "path", path, "error", err)
		lexicon, _ = risk.LoadLexicon("")
	}
	return lexicon
}
