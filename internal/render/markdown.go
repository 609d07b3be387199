package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// MarkdownRenderer writes the report as a markdown document. It needs no
// browser, so it serves as the degraded fallback when Chromium rendering
// fails, and as the CLI's output format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer { return &MarkdownRenderer{} }

// Render writes the full report in markdown form.
func (r *MarkdownRenderer) Render(report *models.AnalysisReport) ([]byte, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Mobile Friendliness Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Analyzed", report.AnalysisTimestamp.Format("2006-01-02 15:04:05 MST")},
			{"Overall Score", strconv.Itoa(report.OverallScore)},
			{"Verdict", scoreVerdict(report.OverallScore)},
		},
	})
	md.PlainText("")

	md.H2("Category Scores")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Score"},
		Rows: [][]string{
			{"Performance", strconv.Itoa(report.PerformanceScore)},
			{"Accessibility", strconv.Itoa(report.AccessibilityScore)},
			{"Best Practices", strconv.Itoa(report.BestPracticesScore)},
			{"SEO", strconv.Itoa(report.SEOScore)},
		},
	})
	md.PlainText("")

	md.H2("Mobile Usability Checks")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Check", "Score", "Passed"},
		Rows: [][]string{
			checkRow("Mobile viewport", report.MobileViewport),
			checkRow("Touch targets", report.TouchElements),
			checkRow("Text size", report.TextSize),
			checkRow("Content width", report.ContentWidth),
		},
	})
	md.PlainText("")

	md.H2("Core Web Vitals")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value", "Score"},
		Rows: [][]string{
			{"LCP", fmt.Sprintf("%.2f s", report.CoreWebVitals.LCP.Value), formatScore(report.CoreWebVitals.LCP.Score)},
			{"CLS", fmt.Sprintf("%.3f", report.CoreWebVitals.CLS.Value), formatScore(report.CoreWebVitals.CLS.Score)},
			{"INP", fmt.Sprintf("%.0f ms", report.CoreWebVitals.INP.Value), formatScore(report.CoreWebVitals.INP.Score)},
		},
	})
	md.PlainText("")

	md.H2("Recommendations")
	md.PlainText("")
	if len(report.Recommendations) == 0 {
		md.PlainText("No issues found. The page passed every mobile-usability check.")
		md.PlainText("")
	}
	for _, rec := range report.Recommendations {
		md.H3(fmt.Sprintf("%s (%s)", rec.Title, rec.Priority))
		md.PlainText("")
		md.PlainText(rec.Description)
		md.PlainText("")
		md.BulletList(rec.Solutions...)
		md.PlainText("")
	}

	if err := md.Build(); err != nil {
		return nil, fmt.Errorf("%w: build markdown: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

// RenderPDF satisfies Renderer by returning the markdown document; the
// caller is responsible for serving it with a text content type.
func (r *MarkdownRenderer) RenderPDF(_ context.Context, report *models.AnalysisReport) ([]byte, error) {
	return r.Render(report)
}

// RenderScreenshot is unsupported for the markdown renderer; screenshot
// requests have no degraded form.
func (r *MarkdownRenderer) RenderScreenshot(context.Context, *models.AnalysisReport) ([]byte, error) {
	return nil, fmt.Errorf("%w: screenshots require a browser renderer", ErrRenderFailed)
}

func checkRow(name string, check models.CheckResult) []string {
	passed := "no"
	if check.Passed {
		passed = "yes"
	}
	return []string{name, formatScore(check.Score), passed}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

// Compile-time check that MarkdownRenderer implements Renderer.
var _ Renderer = (*MarkdownRenderer)(nil)
