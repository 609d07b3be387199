package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wheemin1/MobileSiteCheck/internal/audit"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// --- mock Analyzer ---

type mockAnalyzer struct {
	fn func(ctx context.Context, url string) (*models.AnalysisReport, error)
}

func (m *mockAnalyzer) Analyze(ctx context.Context, url string) (*models.AnalysisReport, error) {
	return m.fn(ctx, url)
}

func sampleReport(id int64, url string) *models.AnalysisReport {
	return &models.AnalysisReport{
		ID:                 id,
		URL:                url,
		OverallScore:       85,
		PerformanceScore:   80,
		AccessibilityScore: 90,
		BestPracticesScore: 85,
		SEOScore:           85,
		MobileViewport:     models.CheckResult{Score: 100, Passed: true},
		TouchElements:      models.CheckResult{Score: 100, Passed: true},
		TextSize:           models.CheckResult{Score: 100, Passed: true},
		ContentWidth:       models.CheckResult{Score: 100, Passed: true},
		CoreWebVitals: models.CoreWebVitals{
			LCP: models.VitalMetric{Value: 2.1, Score: 0.95},
			CLS: models.VitalMetric{Value: 0.05, Score: 0.98},
			INP: models.VitalMetric{Value: 150, Score: 0.92},
		},
		Recommendations:   []models.Recommendation{},
		AnalysisTimestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// --- helpers ---

func analyzeReq(t *testing.T, body any) *http.Request {
	t.Helper()
	b, _ := json.Marshal(body)
	r := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func parseErr(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Message
}

// --- tests ---

func TestAnalyzeHandler_Success(t *testing.T) {
	mock := &mockAnalyzer{fn: func(_ context.Context, url string) (*models.AnalysisReport, error) {
		return sampleReport(7, url), nil
	}}
	h := NewAnalyzeHandler(mock)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, analyzeReq(t, map[string]any{"url": "https://example.com"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if int64(got["id"].(float64)) != 7 {
		t.Errorf("unexpected id: %v", got["id"])
	}
	if got["url"] != "https://example.com" {
		t.Errorf("unexpected url: %v", got["url"])
	}
	if int(got["overallScore"].(float64)) != 85 {
		t.Errorf("unexpected overallScore: %v", got["overallScore"])
	}
	if _, ok := got["coreWebVitals"].(map[string]any); !ok {
		t.Errorf("coreWebVitals missing or wrong shape: %v", got["coreWebVitals"])
	}
	// The response is the plain report, not wrapped in an envelope.
	if _, ok := got["data"]; ok {
		t.Errorf("report should not be wrapped in a data envelope")
	}
}

func TestAnalyzeHandler_InvalidJSON(t *testing.T) {
	h := NewAnalyzeHandler(&mockAnalyzer{fn: func(_ context.Context, url string) (*models.AnalysisReport, error) {
		t.Fatal("analyzer must not be called")
		return nil, nil
	}})
	rec := httptest.NewRecorder()

	r := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{invalid")))
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyzeHandler_MissingURL(t *testing.T) {
	h := NewAnalyzeHandler(&mockAnalyzer{fn: func(_ context.Context, url string) (*models.AnalysisReport, error) {
		t.Fatal("analyzer must not be called")
		return nil, nil
	}})
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, analyzeReq(t, map[string]any{}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if msg := parseErr(t, rec); msg != "url is required" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestAnalyzeHandler_InvalidURL(t *testing.T) {
	mock := &mockAnalyzer{fn: func(_ context.Context, _ string) (*models.AnalysisReport, error) {
		return nil, fmt.Errorf("validate: %w", audit.ErrInvalidURL)
	}}
	h := NewAnalyzeHandler(mock)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, analyzeReq(t, map[string]any{"url": "not-a-url"}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyzeHandler_AnalysisFailed(t *testing.T) {
	mock := &mockAnalyzer{fn: func(_ context.Context, _ string) (*models.AnalysisReport, error) {
		return nil, fmt.Errorf("all providers failed: %w", audit.ErrAnalysisFailed)
	}}
	h := NewAnalyzeHandler(mock)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, analyzeReq(t, map[string]any{"url": "https://example.com"}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyzeHandler_UnexpectedError(t *testing.T) {
	mock := &mockAnalyzer{fn: func(_ context.Context, _ string) (*models.AnalysisReport, error) {
		return nil, errors.New("connection reset")
	}}
	h := NewAnalyzeHandler(mock)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, analyzeReq(t, map[string]any{"url": "https://example.com"}))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
