package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wheemin1/MobileSiteCheck/internal/render"
	"github.com/wheemin1/MobileSiteCheck/internal/store"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// --- mocks ---

type mockReportGetter struct {
	reports map[int64]*models.AnalysisReport
}

func (m *mockReportGetter) GetReport(_ context.Context, id int64) (*models.AnalysisReport, error) {
	report, ok := m.reports[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return report, nil
}

type mockRenderer struct {
	pdf    []byte
	png    []byte
	pdfErr error
	pngErr error
}

func (m *mockRenderer) RenderPDF(context.Context, *models.AnalysisReport) ([]byte, error) {
	return m.pdf, m.pdfErr
}

func (m *mockRenderer) RenderScreenshot(context.Context, *models.AnalysisReport) ([]byte, error) {
	return m.png, m.pngErr
}

// reportReq builds a GET request with the chi id route param populated.
func reportReq(t *testing.T, path, id string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func getterWith(reports ...*models.AnalysisReport) *mockReportGetter {
	m := &mockReportGetter{reports: make(map[int64]*models.AnalysisReport)}
	for _, report := range reports {
		m.reports[report.ID] = report
	}
	return m
}

// --- tests ---

func TestGetReportHandler_Success(t *testing.T) {
	h := NewGetReportHandler(getterWith(sampleReport(3, "https://example.com")))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, reportReq(t, "/api/reports/3", "3"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if int64(got["id"].(float64)) != 3 {
		t.Errorf("unexpected id: %v", got["id"])
	}
}

func TestGetReportHandler_NotFound(t *testing.T) {
	h := NewGetReportHandler(getterWith())
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, reportReq(t, "/api/reports/99", "99"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if msg := parseErr(t, rec); msg != "Analysis report not found" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestGetReportHandler_NonNumericID(t *testing.T) {
	h := NewGetReportHandler(getterWith(sampleReport(1, "https://example.com")))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, reportReq(t, "/api/reports/abc", "abc"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestReportPDFHandler_Success(t *testing.T) {
	primary := &mockRenderer{pdf: []byte("%PDF-1.4 fake")}
	h := NewReportPDFHandler(getterWith(sampleReport(5, "https://example.com")), primary, render.NewMarkdownRenderer())
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, reportReq(t, "/api/reports/5/pdf", "5"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("unexpected content type: %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "mobile-analysis-5.pdf") {
		t.Errorf("unexpected disposition: %q", cd)
	}
	if rec.Body.String() != "%PDF-1.4 fake" {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

func TestReportPDFHandler_FallsBackToText(t *testing.T) {
	primary := &mockRenderer{pdfErr: errors.New("chromium not found")}
	h := NewReportPDFHandler(getterWith(sampleReport(5, "https://example.com")), primary, render.NewMarkdownRenderer())
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, reportReq(t, "/api/reports/5/pdf", "5"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type: %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "mobile-analysis-5.txt") {
		t.Errorf("unexpected disposition: %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "https://example.com") {
		t.Errorf("fallback document should mention the analyzed URL")
	}
}

func TestReportPDFHandler_NotFound(t *testing.T) {
	h := NewReportPDFHandler(getterWith(), &mockRenderer{}, render.NewMarkdownRenderer())
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, reportReq(t, "/api/reports/42/pdf", "42"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestReportScreenshotHandler_Success(t *testing.T) {
	renderer := &mockRenderer{png: []byte{0x89, 'P', 'N', 'G'}}
	h := NewReportScreenshotHandler(getterWith(sampleReport(9, "https://example.com")), renderer)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, reportReq(t, "/api/reports/9/screenshot", "9"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("unexpected content type: %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "mobile-analysis-9.png") {
		t.Errorf("unexpected disposition: %q", cd)
	}
}

func TestReportScreenshotHandler_RenderFailure(t *testing.T) {
	renderer := &mockRenderer{pngErr: errors.New("chromium crashed")}
	h := NewReportScreenshotHandler(getterWith(sampleReport(9, "https://example.com")), renderer)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, reportReq(t, "/api/reports/9/screenshot", "9"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
