// Package lighthouse runs the Lighthouse CLI against a URL and parses its
// JSON output into the shared raw result shape.
package lighthouse

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/wheemin1/MobileSiteCheck/internal/audit"
	"github.com/wheemin1/MobileSiteCheck/internal/browser"
	"github.com/wheemin1/MobileSiteCheck/internal/config"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// Provider shells out to the Lighthouse CLI with a mobile emulation
// profile. It is expected to fail in environments without the engine or a
// browser; callers fall back to the simulated provider.
type Provider struct {
	engine     string
	chromePath string
	tempDir    string
}

// NewProvider creates a Lighthouse provider from config.
func NewProvider(cfg config.AuditConfig, render config.RenderConfig) *Provider {
	return &Provider{
		engine:     cfg.Engine,
		chromePath: render.ChromePath,
		tempDir:    os.TempDir(),
	}
}

func (p *Provider) Name() string { return "lighthouse" }

// Analyze runs one Lighthouse audit. The result is written to a temp file
// because the CLI mixes progress output with stdout.
func (p *Provider) Analyze(ctx context.Context, url string) (*models.RawResult, error) {
	chrome, err := browser.Find(p.chromePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", audit.ErrEngineUnavailable, err)
	}

	outPath := filepath.Join(p.tempDir, fmt.Sprintf("lighthouse-%d.json", time.Now().UnixNano()))
	defer os.Remove(outPath)

	args := []string{
		url,
		"--only-categories=performance,accessibility,best-practices,seo",
		"--output=json",
		"--output-path=" + outPath,
		"--emulated-form-factor=mobile",
		"--throttling-method=simulate",
		"--no-enable-error-reporting",
		"--quiet",
		"--chrome-flags=" + strings.Join(browser.DefaultFlags, " "),
	}

	cmd := exec.CommandContext(ctx, p.engine, args...)
	cmd.Env = append(os.Environ(), "CHROME_PATH="+chrome)

	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("lighthouse run: %w", ctx.Err())
		}
		return nil, fmt.Errorf("lighthouse run: %w: %s", err, firstLine(out))
	}

	// Do not trust output written by a cancelled run.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lighthouse run: %w", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read lighthouse output: %w", err)
	}

	raw, err := models.ParseRawResult(data)
	if err != nil {
		return nil, fmt.Errorf("parse lighthouse output: %w", err)
	}
	return raw, nil
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// Compile-time check that Provider implements audit.Provider.
var _ audit.Provider = (*Provider)(nil)
