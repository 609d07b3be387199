// Package simulated provides a deterministic offline audit provider. It
// emits the same raw result schema as the Lighthouse engine, seeded from
// the URL, so repeated analysis of one URL yields identical scores
// without any network or browser access.
package simulated

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/wheemin1/MobileSiteCheck/internal/audit"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// Well-known domains get a score boost, mirroring how large properties
// tend to audit well in practice.
var wellKnownDomains = []string{
	"google.com", "naver.com", "kakao.com", "samsung.com",
	"lg.com", "coupang.com", "youtube.com", "github.com",
}

// Provider generates plausible audit results without touching the page.
// It never fails for a syntactically valid URL.
type Provider struct{}

// NewProvider creates a simulated provider.
func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "simulated" }

// Analyze produces a raw result seeded from the URL.
func (p *Provider) Analyze(_ context.Context, rawURL string) (*models.RawResult, error) {
	u, err := audit.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	h := fnv.New64a()
	h.Write([]byte(u))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	wellKnown := isWellKnown(u)
	https := strings.HasPrefix(u, "https://")

	perf := categoryScore(rng, pick(wellKnown, 0.80, 0.65), 0.15)
	a11y := categoryScore(rng, pick(wellKnown, 0.85, 0.70), 0.15)
	best := categoryScore(rng, pick(https, 0.90, 0.70), 0.10)
	seo := categoryScore(rng, pick(wellKnown, 0.85, 0.75), 0.10)

	lcpScore := categoryScore(rng, 0.75, 0.20)
	clsScore := categoryScore(rng, 0.80, 0.15)
	inpScore := categoryScore(rng, 0.85, 0.15)

	return &models.RawResult{
		FinalURL: u,
		Categories: map[string]models.RawCategory{
			models.CategoryPerformance:   {Score: &perf},
			models.CategoryAccessibility: {Score: &a11y},
			models.CategoryBestPractices: {Score: &best},
			models.CategorySEO:           {Score: &seo},
		},
		Audits: map[string]models.RawAudit{
			models.AuditViewport:     checkAudit(rng, 0.7),
			models.AuditTapTargets:   checkAudit(rng, 0.7),
			models.AuditFontSize:     checkAudit(rng, 0.6),
			models.AuditContentWidth: checkAudit(rng, 0.8),
			models.AuditLCP: {
				Score: &lcpScore,
				// Milliseconds; the normalizer converts to seconds.
				NumericValue: 1200 + rng.Float64()*2800,
			},
			models.AuditCLS: {
				Score:        &clsScore,
				NumericValue: rng.Float64() * 0.25,
			},
			models.AuditINP: {
				Score:        &inpScore,
				NumericValue: 100 + rng.Float64()*200,
			},
			models.AuditSpeedIndex: {
				Score:        &perf,
				NumericValue: 2000 + rng.Float64()*4000,
			},
		},
	}, nil
}

// checkAudit emits a binary-usability audit: an exact 1 with the given
// pass probability, otherwise a failing fraction. Passed is exact
// equality with 1 downstream, so anything below 1 fails the check.
func checkAudit(rng *rand.Rand, passProb float64) models.RawAudit {
	score := 1.0
	if rng.Float64() >= passProb {
		score = 0.3 + rng.Float64()*0.6
	}
	return models.RawAudit{Score: &score}
}

// categoryScore returns base +/- variance, clamped to [0, 1].
func categoryScore(rng *rand.Rand, base, variance float64) float64 {
	score := base + (rng.Float64()-0.5)*variance*2
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

func pick(cond bool, yes, no float64) float64 {
	if cond {
		return yes
	}
	return no
}

func isWellKnown(url string) bool {
	for _, domain := range wellKnownDomains {
		if strings.Contains(url, domain) {
			return true
		}
	}
	return false
}

// Compile-time check that Provider implements audit.Provider.
var _ audit.Provider = (*Provider)(nil)
