// Package report turns raw audit results into canonical analysis reports
// and derives remediation recommendations from them.
package report

import (
	"math"

	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// categories that feed the overall score. The divisor is always
// len(overallCategories); a missing or null category contributes 0.
var overallCategories = []string{
	models.CategoryPerformance,
	models.CategoryAccessibility,
	models.CategoryBestPractices,
	models.CategorySEO,
}

// Normalize converts a raw audit result into a canonical report for the
// given URL. ID, Recommendations, and AnalysisTimestamp are left unset;
// the caller fills them in before storing.
//
// The overall score is the rounded mean of the four category fractions,
// computed before each category is rounded to an integer, so rounding
// error is not compounded.
func Normalize(raw *models.RawResult, url string) (*models.AnalysisReport, error) {
	if raw == nil || (raw.Categories == nil && raw.Audits == nil) {
		return nil, models.ErrInvalidResultShape
	}

	var sum float64
	for _, name := range overallCategories {
		sum += raw.CategoryScore(name)
	}
	overall := roundScore(sum / float64(len(overallCategories)))

	inpValue := raw.AuditValue(models.AuditINP)
	inpScore := raw.AuditScore(models.AuditINP)
	if _, ok := raw.Audits[models.AuditINP]; !ok {
		inpValue = raw.AuditValue(models.AuditMaxPotentialFID)
		inpScore = raw.AuditScore(models.AuditMaxPotentialFID)
	}

	return &models.AnalysisReport{
		URL:                url,
		OverallScore:       overall,
		PerformanceScore:   roundScore(raw.CategoryScore(models.CategoryPerformance)),
		AccessibilityScore: roundScore(raw.CategoryScore(models.CategoryAccessibility)),
		BestPracticesScore: roundScore(raw.CategoryScore(models.CategoryBestPractices)),
		SEOScore:           roundScore(raw.CategoryScore(models.CategorySEO)),
		MobileViewport:     checkFromAudit(raw, models.AuditViewport),
		TouchElements:      checkFromAudit(raw, models.AuditTapTargets),
		TextSize:           checkFromAudit(raw, models.AuditFontSize),
		ContentWidth:       checkFromAudit(raw, models.AuditContentWidth),
		CoreWebVitals: models.CoreWebVitals{
			LCP: models.VitalMetric{
				// Lighthouse reports LCP in milliseconds.
				Value: raw.AuditValue(models.AuditLCP) / 1000,
				Score: raw.AuditScore(models.AuditLCP),
			},
			CLS: models.VitalMetric{
				Value: raw.AuditValue(models.AuditCLS),
				Score: raw.AuditScore(models.AuditCLS),
			},
			INP: models.VitalMetric{
				Value: inpValue,
				Score: inpScore,
			},
		},
	}, nil
}

// checkFromAudit builds a CheckResult from the named audit. An absent
// audit scores 0. Passed requires an exact score of 1.
func checkFromAudit(raw *models.RawResult, name string) models.CheckResult {
	score := raw.AuditScore(name)
	return models.CheckResult{
		Score:   score,
		Passed:  score == 1,
		Details: raw.AuditDetails(name),
	}
}

// roundScore converts a 0–1 fraction to a 0–100 integer.
func roundScore(fraction float64) int {
	return int(math.Round(fraction * 100))
}
