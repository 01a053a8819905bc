package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkoval/legal-clause-analysis/internal/config"
	"github.com/mkoval/legal-clause-analysis/internal/core/domain"
)

type analyzerFake struct{}

func (analyzerFake) Analyze(_ context.Context, filename string, body io.Reader) (*domain.Analysis, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}
	switch {
	case !strings.HasSuffix(filename, ".pdf") && !strings.HasSuffix(filename, ".docx"):
		return nil, domain.WrapError(domain.ErrInvalidFileType, "validate upload", errors.New(filename))
	case strings.HasPrefix(filename, "empty"):
		return nil, domain.WrapError(domain.ErrNoReadableText, "extract text", errors.New(filename))
	case strings.HasPrefix(filename, "flat"):
		return nil, domain.WrapError(domain.ErrNoClauses, "segment text", errors.New(filename))
	}
	return &domain.Analysis{
		TotalClauses: 1,
		Records: []domain.ClauseAnalysis{
			{
				Clause: "1. Clause body long enough to count.",
				Phase1: domain.Classification{PredictedType: "Termination", Confidence: 0.9},
				Phase3: domain.RiskAssessment{Level: "High", Confidence: 0.8, Justification: "j"},
			},
		},
	}, nil
}

func newTestHandler(cfg config.Config) http.Handler {
	return NewRouter(cfg, analyzerFake{}, nil).Handler()
}

func multipartUpload(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, res *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return payload["error"]
}

func TestHomeEndpoint(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Legal Clause Risk Analysis API") {
		t.Fatalf("unexpected body: %q", res.Body.String())
	}
}

func TestHealthzEndpoint(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestUploadMissingFileField(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString("plain"))
	req.Header.Set("Content-Type", "text/plain")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if got := decodeError(t, res); got != "No file provided" {
		t.Fatalf("error = %q, want %q", got, "No file provided")
	}
}

func TestUploadDisallowedExtension(t *testing.T) {
	handler := newTestHandler(config.Config{})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, multipartUpload(t, "contract.txt", "text"))

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	if got := decodeError(t, res); got != "Invalid file type" {
		t.Fatalf("error = %q, want %q", got, "Invalid file type")
	}
}

func TestUploadNoReadableText(t *testing.T) {
	handler := newTestHandler(config.Config{})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, multipartUpload(t, "empty.pdf", "scanned"))

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
	if got := decodeError(t, res); got != "No readable text found." {
		t.Fatalf("error = %q, want %q", got, "No readable text found.")
	}
}

func TestUploadNoClauses(t *testing.T) {
	handler := newTestHandler(config.Config{})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, multipartUpload(t, "flat.docx", "x y z"))

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
	if got := decodeError(t, res); got != "No clauses detected." {
		t.Fatalf("error = %q, want %q", got, "No clauses detected.")
	}
}

func TestUploadSuccessPayloadShape(t *testing.T) {
	handler := newTestHandler(config.Config{})

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, multipartUpload(t, "contract.pdf", "content"))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var payload struct {
		TotalClauses int `json:"total_clauses"`
		Analysis     []struct {
			Clause string `json:"clause"`
			Phase1 struct {
				PredictedClauseType string  `json:"predicted_clause_type"`
				Confidence          float64 `json:"confidence"`
			} `json:"phase1"`
			Phase3 struct {
				RiskLevel     string  `json:"risk_level"`
				Confidence    float64 `json:"confidence"`
				Justification string  `json:"justification"`
			} `json:"phase3"`
		} `json:"analysis"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.TotalClauses != len(payload.Analysis) {
		t.Fatalf("total_clauses = %d, analysis length = %d", payload.TotalClauses, len(payload.Analysis))
	}
	if payload.Analysis[0].Phase1.PredictedClauseType != "Termination" {
		t.Fatalf("unexpected phase1: %+v", payload.Analysis[0].Phase1)
	}
	if payload.Analysis[0].Phase3.RiskLevel != "High" {
		t.Fatalf("unexpected phase3: %+v", payload.Analysis[0].Phase3)
	}
}

func TestUploadMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	handler := newTestHandler(config.Config{APIRateLimitRPS: 1, APIRateLimitBurst: 1})

	req1 := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res1 := httptest.NewRecorder()
	handler.ServeHTTP(res1, req1)
	if res1.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", res1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res2 := httptest.NewRecorder()
	handler.ServeHTTP(res2, req2)
	if res2.Code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", res2.Code)
	}
	if res2.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header for 429 response")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.Code)
	}
	if res.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS allow-origin header")
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	handler := newTestHandler(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id header")
	}
}
