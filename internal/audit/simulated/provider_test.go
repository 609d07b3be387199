package simulated_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheemin1/MobileSiteCheck/internal/audit"
	"github.com/wheemin1/MobileSiteCheck/internal/audit/simulated"
	"github.com/wheemin1/MobileSiteCheck/internal/report"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

func TestProvider_Deterministic(t *testing.T) {
	p := simulated.NewProvider()
	ctx := context.Background()

	first, err := p.Analyze(ctx, "https://example.com")
	require.NoError(t, err)
	second, err := p.Analyze(ctx, "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := p.Analyze(ctx, "https://other.example.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.Categories, other.Categories)
}

func TestProvider_InvalidURL(t *testing.T) {
	p := simulated.NewProvider()
	for _, raw := range []string{"not-a-url", "", "ftp://example.com"} {
		_, err := p.Analyze(context.Background(), raw)
		assert.ErrorIs(t, err, audit.ErrInvalidURL, raw)
	}
}

func TestProvider_OutputNormalizes(t *testing.T) {
	p := simulated.NewProvider()
	urls := []string{
		"https://example.com",
		"https://google.com",
		"http://insecure.example.org/page",
		"https://shop.example.co.kr/items?id=42",
	}
	for _, url := range urls {
		raw, err := p.Analyze(context.Background(), url)
		require.NoError(t, err, url)
		assert.Equal(t, url, raw.FinalURL)

		rep, err := report.Normalize(raw, url)
		require.NoError(t, err, url)

		for name, score := range map[string]int{
			"overall":        rep.OverallScore,
			"performance":    rep.PerformanceScore,
			"accessibility":  rep.AccessibilityScore,
			"best-practices": rep.BestPracticesScore,
			"seo":            rep.SEOScore,
		} {
			assert.GreaterOrEqual(t, score, 0, "%s %s", url, name)
			assert.LessOrEqual(t, score, 100, "%s %s", url, name)
		}

		assert.Greater(t, rep.CoreWebVitals.LCP.Value, 0.0)
		assert.GreaterOrEqual(t, rep.CoreWebVitals.CLS.Value, 0.0)
		assert.Greater(t, rep.CoreWebVitals.INP.Value, 0.0)
	}
}

func TestProvider_UsabilityChecksBinary(t *testing.T) {
	p := simulated.NewProvider()
	raw, err := p.Analyze(context.Background(), "https://example.com")
	require.NoError(t, err)

	for _, name := range []string{
		models.AuditViewport, models.AuditTapTargets,
		models.AuditFontSize, models.AuditContentWidth,
	} {
		score := raw.AuditScore(name)
		if score != 1 {
			assert.GreaterOrEqual(t, score, 0.3, name)
			assert.Less(t, score, 1.0, name)
		}
	}
}
