// Package models contains shared data models used across the MobileSiteCheck codebase.
package models

import "time"

// Recommendation priorities, ordered high to low.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// CheckResult is the pass/fail verdict plus raw score for one
// mobile-usability audit. Passed is true only for an exact score of 1.
type CheckResult struct {
	Score   float64 `db:"score"   json:"score"`
	Passed  bool    `db:"passed"  json:"passed"`
	Details any     `db:"details" json:"details,omitempty"`
}

// VitalMetric is a single Core Web Vital measurement. Value units depend
// on the metric: seconds for LCP, unitless for CLS, milliseconds for INP.
type VitalMetric struct {
	Value float64 `db:"value" json:"value"`
	Score float64 `db:"score" json:"score"`
}

// CoreWebVitals groups the three standardized UX metrics.
type CoreWebVitals struct {
	LCP VitalMetric `db:"lcp" json:"lcp"`
	CLS VitalMetric `db:"cls" json:"cls"`
	INP VitalMetric `db:"inp" json:"inp"`
}

// Recommendation is a single remediation suggestion attached to a report.
// Generated fresh on every analysis, never persisted on its own.
type Recommendation struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Solutions   []string `json:"solutions"`
}

// AnalysisReport is the canonical, immutable result of one mobile-friendliness
// analysis. The store assigns ID and AnalysisTimestamp at creation; a
// re-analysis of the same URL produces a new report with a new id.
type AnalysisReport struct {
	ID                 int64            `db:"id"                   json:"id"`
	URL                string           `db:"url"                  json:"url"`
	OverallScore       int              `db:"overall_score"        json:"overallScore"`
	PerformanceScore   int              `db:"performance_score"    json:"performanceScore"`
	AccessibilityScore int              `db:"accessibility_score"  json:"accessibilityScore"`
	BestPracticesScore int              `db:"best_practices_score" json:"bestPracticesScore"`
	SEOScore           int              `db:"seo_score"            json:"seoScore"`
	MobileViewport     CheckResult      `db:"mobile_viewport"      json:"mobileViewport"`
	TouchElements      CheckResult      `db:"touch_elements"       json:"touchElements"`
	TextSize           CheckResult      `db:"text_size"            json:"textSize"`
	ContentWidth       CheckResult      `db:"content_width"        json:"contentWidth"`
	CoreWebVitals      CoreWebVitals    `db:"core_web_vitals"      json:"coreWebVitals"`
	Recommendations    []Recommendation `db:"recommendations"      json:"recommendations"`
	AnalysisTimestamp  time.Time        `db:"analysis_timestamp"   json:"analysisTimestamp"`
}

// User is a registered account. PasswordHash holds a bcrypt hash, never
// the plaintext password.
type User struct {
	ID           int64     `db:"id"            json:"id"`
	Username     string    `db:"username"      json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}
