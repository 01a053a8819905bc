package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkoval/legal-clause-analysis/internal/config"
	"github.com/mkoval/legal-clause-analysis/internal/core/ports"
	"github.com/mkoval/legal-clause-analysis/internal/observability/metrics"
)

const serviceName = "api"

const homeHTML = "<h3>Legal Clause Risk Analysis API is running. Use /upload to POST files.</h3>"

type Router struct {
	cfg      config.Config
	analyzer ports.DocumentAnalyzer
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(cfg config.Config, analyzer ports.DocumentAnalyzer, m *metrics.HTTPServerMetrics) *Router {
	return &Router{
		cfg:      cfg,
		analyzer: analyzer,
		metrics:  m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.home)
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/upload", rt.upload)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = corsMiddleware(handler)
	if rt.cfg.APIRateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	}
	handler = accessLogMiddleware(handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(handler)
}

func (rt *Router) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(homeHTML))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		rt.recordRejection("no_file")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file provided"})
		return
	}
	defer file.Close()

	start := time.Now()
	analysis, err := rt.analyzer.Analyze(r.Context(), fileHeader.Filename, file)
	if err != nil {
		status, message := mapError(err)
		rt.recordRejection(rejectionOutcome(err))
		writeJSON(w, status, map[string]string{"error": message})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordAnalysis(serviceName, analysis, time.Since(start))
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (rt *Router) recordRejection(outcome string) {
	if rt.metrics != nil {
		rt.metrics.RecordRejection(serviceName, outcome)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
