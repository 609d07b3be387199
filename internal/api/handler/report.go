package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wheemin1/MobileSiteCheck/internal/api/response"
	"github.com/wheemin1/MobileSiteCheck/internal/render"
	"github.com/wheemin1/MobileSiteCheck/internal/store"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// ReportGetter is the store subset the report handlers depend on.
type ReportGetter interface {
	GetReport(ctx context.Context, id int64) (*models.AnalysisReport, error)
}

// NewGetReportHandler returns an http.HandlerFunc for GET /api/reports/{id}.
func NewGetReportHandler(st ReportGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := lookupReport(w, r, st)
		if !ok {
			return
		}
		response.JSON(w, report)
	}
}

// NewReportPDFHandler returns an http.HandlerFunc for GET /api/reports/{id}/pdf.
// When the browser renderer fails, the markdown fallback produces a plain
// text document instead of surfacing an error.
func NewReportPDFHandler(st ReportGetter, primary render.Renderer, fallback *render.MarkdownRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := lookupReport(w, r, st)
		if !ok {
			return
		}

		pdf, err := primary.RenderPDF(r.Context(), report)
		if err == nil {
			response.Attachment(w, "application/pdf",
				fmt.Sprintf("mobile-analysis-%d.pdf", report.ID), pdf)
			return
		}
		slog.Warn("pdf rendering failed, serving text fallback",
			"report_id", report.ID, "error", err)

		text, err := fallback.Render(report)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Failed to generate the report document")
			return
		}
		response.Attachment(w, "text/plain; charset=utf-8",
			fmt.Sprintf("mobile-analysis-%d.txt", report.ID), text)
	}
}

// NewReportScreenshotHandler returns an http.HandlerFunc for
// GET /api/reports/{id}/screenshot. Screenshots have no degraded form.
func NewReportScreenshotHandler(st ReportGetter, renderer render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := lookupReport(w, r, st)
		if !ok {
			return
		}

		png, err := renderer.RenderScreenshot(r.Context(), report)
		if err != nil {
			slog.Error("screenshot rendering failed", "report_id", report.ID, "error", err)
			response.Error(w, http.StatusInternalServerError, "Failed to generate the report image")
			return
		}
		response.Attachment(w, "image/png",
			fmt.Sprintf("mobile-analysis-%d.png", report.ID), png)
	}
}

// lookupReport parses the id path param and fetches the report, writing
// the error response itself when the report cannot be served.
func lookupReport(w http.ResponseWriter, r *http.Request, st ReportGetter) (*models.AnalysisReport, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusNotFound, "Analysis report not found")
		return nil, false
	}

	report, err := st.GetReport(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		response.Error(w, http.StatusNotFound, "Analysis report not found")
		return nil, false
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load the analysis report")
		return nil, false
	}
	return report, true
}
