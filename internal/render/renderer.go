// Package render turns analysis reports into downloadable documents.
// The primary renderer prints an HTML version of the report to PDF or PNG
// through headless Chromium; a markdown-based text renderer serves as the
// degraded fallback when Chromium is unavailable.
package render

import (
	"context"
	"errors"

	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// ErrRenderFailed is returned when a document cannot be produced.
var ErrRenderFailed = errors.New("report rendering failed")

// Renderer produces binary report documents.
type Renderer interface {
	// RenderPDF renders the report as a PDF document.
	RenderPDF(ctx context.Context, report *models.AnalysisReport) ([]byte, error)
	// RenderScreenshot renders the report as a PNG image.
	RenderScreenshot(ctx context.Context, report *models.AnalysisReport) ([]byte, error)
}
