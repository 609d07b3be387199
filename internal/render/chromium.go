package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/wheemin1/MobileSiteCheck/internal/browser"
	"github.com/wheemin1/MobileSiteCheck/internal/config"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// ChromiumRenderer prints the HTML report through headless Chromium.
type ChromiumRenderer struct {
	chromePath string
	timeout    time.Duration
	tempDir    string
}

// NewChromiumRenderer creates a renderer from config.
func NewChromiumRenderer(cfg config.RenderConfig) *ChromiumRenderer {
	return &ChromiumRenderer{
		chromePath: cfg.ChromePath,
		timeout:    cfg.Timeout,
		tempDir:    os.TempDir(),
	}
}

func (r *ChromiumRenderer) RenderPDF(ctx context.Context, report *models.AnalysisReport) ([]byte, error) {
	return r.render(ctx, report, "pdf", func(outPath string) []string {
		return []string{"--print-to-pdf=" + outPath, "--no-pdf-header-footer"}
	})
}

func (r *ChromiumRenderer) RenderScreenshot(ctx context.Context, report *models.AnalysisReport) ([]byte, error) {
	return r.render(ctx, report, "png", func(outPath string) []string {
		return []string{"--screenshot=" + outPath, "--window-size=1200,800", "--hide-scrollbars"}
	})
}

// render writes the report HTML to a temp file and runs Chromium over it
// with the mode-specific output flags.
func (r *ChromiumRenderer) render(ctx context.Context, report *models.AnalysisReport, ext string, modeArgs func(string) []string) ([]byte, error) {
	chrome, err := browser.Find(r.chromePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	html, err := reportHTML(report)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	stamp := time.Now().UnixNano()
	htmlPath := filepath.Join(r.tempDir, fmt.Sprintf("report-%d-%d.html", report.ID, stamp))
	outPath := filepath.Join(r.tempDir, fmt.Sprintf("report-%d-%d.%s", report.ID, stamp, ext))
	defer os.Remove(htmlPath)
	defer os.Remove(outPath)

	if err := os.WriteFile(htmlPath, html, 0o600); err != nil {
		return nil, fmt.Errorf("%w: write html: %v", ErrRenderFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append([]string{}, browser.DefaultFlags...)
	args = append(args, modeArgs(outPath)...)
	args = append(args, "file://"+htmlPath)

	cmd := exec.CommandContext(ctx, chrome, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: chromium: %v: %s", ErrRenderFailed, err, out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read output: %v", ErrRenderFailed, err)
	}
	return data, nil
}

// Compile-time check that ChromiumRenderer implements Renderer.
var _ Renderer = (*ChromiumRenderer)(nil)
