package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string
	LogLevel string

	UploadDir string

	ClassifierPipelinePath string
	ReferenceDatasetPath   string
	RiskModelPath          string
	VectorizerPath         string
	ExplainerPath          string
	RiskLexiconPath        string

	MinClauseChars int
	TopFeatures    int

	APIRateLimitRPS   int
	APIRateLimitBurst int
}

func Load() Config {
	// Missing .env is the normal case in containers.
	_ = godotenv.Load()

	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		UploadDir: mustEnv("UPLOAD_DIR", os.TempDir()),

		ClassifierPipelinePath: mustEnv("CLASSIFIER_PIPELINE_PATH", "models/clause_classifier.json"),
		ReferenceDatasetPath:   mustEnv("REFERENCE_DATASET_PATH", "data/clean_legal_clauses.csv"),
		RiskModelPath:          mustEnv("RISK_MODEL_PATH", "models/risk_model.json"),
		VectorizerPath:         mustEnv("VECTORIZER_PATH", "models/tfidf_vectorizer.json"),
		ExplainerPath:          mustEnv("EXPLAINER_PATH", "models/risk_explainer.json"),
		RiskLexiconPath:        mustEnv("RISK_LEXICON_PATH", ""),

		MinClauseChars: mustEnvInt("MIN_CLAUSE_CHARS", 20),
		TopFeatures:    mustEnvInt("TOP_FEATURES", 5),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 0),
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
