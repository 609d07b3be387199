// Package preview fetches a page's title and meta description and takes a
// mobile-viewport screenshot via headless Chromium.
package preview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wheemin1/MobileSiteCheck/internal/browser"
	"github.com/wheemin1/MobileSiteCheck/internal/config"
)

// ErrPreviewFailed is returned when the page cannot be fetched or the
// screenshot cannot be taken.
var ErrPreviewFailed = errors.New("website preview failed")

const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_7_1 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.2 Mobile/15E148 Safari/604.1"

// Preview holds the generated preview of a page.
type Preview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// Screenshot is raw PNG data; handlers base64-encode it for JSON.
	Screenshot []byte `json:"-"`
}

// Service generates website previews.
type Service struct {
	client     *http.Client
	chromePath string
	tempDir    string
}

// NewService creates a preview Service from config.
func NewService(cfg config.PreviewConfig, render config.RenderConfig) *Service {
	return &Service{
		client:     &http.Client{Timeout: cfg.Timeout},
		chromePath: render.ChromePath,
		tempDir:    os.TempDir(),
	}
}

// Generate fetches the page metadata and screenshots it at an iPhone-size
// viewport. Both steps must succeed.
func (s *Service) Generate(ctx context.Context, url string) (*Preview, error) {
	title, description, err := s.fetchMetadata(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreviewFailed, err)
	}

	screenshot, err := s.screenshot(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreviewFailed, err)
	}

	return &Preview{
		Title:       title,
		Description: description,
		Screenshot:  screenshot,
	}, nil
}

// fetchMetadata requests the page with a mobile user agent and extracts
// <title> and the meta description.
func (s *Service) fetchMetadata(ctx context.Context, url string) (title, description string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", mobileUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", "", fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("parse page: %w", err)
	}

	title = doc.Find("title").First().Text()
	description, _ = doc.Find(`meta[name="description"]`).First().Attr("content")
	return title, description, nil
}

// screenshot shells out to headless Chromium.
func (s *Service) screenshot(ctx context.Context, url string) ([]byte, error) {
	chrome, err := browser.Find(s.chromePath)
	if err != nil {
		return nil, err
	}

	outPath := filepath.Join(s.tempDir, fmt.Sprintf("preview-%d.png", time.Now().UnixNano()))
	defer os.Remove(outPath)

	args := append([]string{}, browser.DefaultFlags...)
	args = append(args,
		"--screenshot="+outPath,
		"--window-size=375,667",
		"--hide-scrollbars",
		"--user-agent="+mobileUserAgent,
		url,
	)

	cmd := exec.CommandContext(ctx, chrome, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("chromium screenshot: %w: %s", err, out)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(outPath)
}
