package audit

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/wheemin1/MobileSiteCheck/internal/report"
	"github.com/wheemin1/MobileSiteCheck/internal/store"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// SimulatedProviderName identifies the offline fallback provider. Reports
// produced by it additionally run the general performance and
// accessibility recommendation rules.
const SimulatedProviderName = "simulated"

// ValidateURL checks that raw parses as an absolute http(s) URL with a
// host and returns its normalized form. Rejected input never reaches a
// provider.
func ValidateURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u.String(), nil
}

// Service runs the analysis pipeline: validate, consult the store's
// freshness window, invoke the primary provider, fall back once to the
// secondary on any failure, normalize, derive recommendations, store.
type Service struct {
	primary  Provider
	fallback Provider
	store    store.Store
	timeout  time.Duration
}

// NewService creates an analysis Service. The timeout bounds each
// provider invocation; the whole pipeline makes at most two.
func NewService(primary, fallback Provider, st store.Store, timeout time.Duration) *Service {
	return &Service{
		primary:  primary,
		fallback: fallback,
		store:    st,
		timeout:  timeout,
	}
}

// Analyze runs one analysis for rawURL and returns the stored report.
// A fresh cached report short-circuits the pipeline. Failures surface as
// ErrInvalidURL or ErrAnalysisFailed.
func (s *Service) Analyze(ctx context.Context, rawURL string) (*models.AnalysisReport, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if cached, err := s.store.GetFreshReport(ctx, u); err == nil {
		slog.Info("returning cached report", "url", u, "report_id", cached.ID)
		return cached, nil
	}

	normalized, used, err := s.runProviders(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	if used.Name() == SimulatedProviderName {
		normalized.Recommendations = report.DeriveExtended(normalized)
	} else {
		normalized.Recommendations = report.Derive(normalized)
	}

	stored, err := s.store.CreateReport(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}

	slog.Info("analysis completed",
		"url", u,
		"provider", used.Name(),
		"report_id", stored.ID,
		"overall_score", stored.OverallScore,
	)
	return stored, nil
}

// runProviders tries the primary provider and falls back exactly once to
// the secondary. A normalization failure on the primary's output counts
// as a primary failure.
func (s *Service) runProviders(ctx context.Context, u string) (*models.AnalysisReport, Provider, error) {
	primaryErr := fmt.Errorf("no primary provider configured")
	if s.primary != nil {
		normalized, err := s.analyzeWith(ctx, s.primary, u)
		if err == nil {
			return normalized, s.primary, nil
		}
		primaryErr = err
		slog.Warn("primary provider failed, falling back",
			"provider", s.primary.Name(), "url", u, "error", err)
	}

	normalized, err := s.analyzeWith(ctx, s.fallback, u)
	if err != nil {
		return nil, nil, fmt.Errorf("primary: %v; fallback: %w", primaryErr, err)
	}
	return normalized, s.fallback, nil
}

func (s *Service) analyzeWith(ctx context.Context, p Provider, u string) (*models.AnalysisReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := p.Analyze(ctx, u)
	if err != nil {
		return nil, err
	}
	return report.Normalize(raw, u)
}
