package models

import (
	"encoding/json"
	"errors"
)

// ErrInvalidResultShape is returned when a raw audit result has no
// discoverable category or audit container, neither at the top level nor
// nested under a known wrapper key.
var ErrInvalidResultShape = errors.New("audit result has invalid shape")

// Audit names consumed by the normalizer. MaxPotentialFID is the fallback
// source for INP when the primary audit is absent; SpeedIndex is parsed
// but unused downstream.
const (
	AuditViewport        = "viewport"
	AuditTapTargets      = "tap-targets"
	AuditFontSize        = "font-size"
	AuditContentWidth    = "content-width"
	AuditLCP             = "largest-contentful-paint"
	AuditCLS             = "cumulative-layout-shift"
	AuditINP             = "interaction-to-next-paint"
	AuditMaxPotentialFID = "max-potential-fid"
	AuditSpeedIndex      = "speed-index"
)

// Category names consumed by the normalizer.
const (
	CategoryPerformance   = "performance"
	CategoryAccessibility = "accessibility"
	CategoryBestPractices = "best-practices"
	CategorySEO           = "seo"
)

// RawCategory is one category entry of a raw audit result. Score may be
// null in the engine's output, hence the pointer.
type RawCategory struct {
	Score *float64 `json:"score"`
}

// RawAudit is one named audit entry of a raw audit result.
type RawAudit struct {
	Score        *float64 `json:"score"`
	NumericValue float64  `json:"numericValue"`
	Details      any      `json:"details,omitempty"`
}

// RawResult is the provider-native audit output before normalization.
// Both the Lighthouse engine and the simulated provider emit this shape.
type RawResult struct {
	FinalURL   string                 `json:"finalUrl,omitempty"`
	Categories map[string]RawCategory `json:"categories"`
	Audits     map[string]RawAudit    `json:"audits"`
}

// rawEnvelope covers Lighthouse CLI output, which nests the result under
// an "lhr" wrapper key when run with certain output modes.
type rawEnvelope struct {
	LHR *RawResult `json:"lhr"`
	RawResult
}

// ParseRawResult decodes provider output, unwrapping the "lhr" envelope
// when present. It fails with ErrInvalidResultShape if neither a category
// nor an audit container can be found.
func ParseRawResult(data []byte) (*RawResult, error) {
	var env rawEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrInvalidResultShape
	}

	result := &env.RawResult
	if env.LHR != nil {
		result = env.LHR
	}
	if result.Categories == nil && result.Audits == nil {
		return nil, ErrInvalidResultShape
	}
	return result, nil
}

// CategoryScore returns the named category's score, or 0 when the
// category is missing or its score is null.
func (r *RawResult) CategoryScore(name string) float64 {
	cat, ok := r.Categories[name]
	if !ok || cat.Score == nil {
		return 0
	}
	return *cat.Score
}

// AuditScore returns the named audit's score, or 0 when absent.
func (r *RawResult) AuditScore(name string) float64 {
	a, ok := r.Audits[name]
	if !ok || a.Score == nil {
		return 0
	}
	return *a.Score
}

// AuditValue returns the named audit's numeric value, or 0 when absent.
func (r *RawResult) AuditValue(name string) float64 {
	a, ok := r.Audits[name]
	if !ok {
		return 0
	}
	return a.NumericValue
}

// AuditDetails returns the named audit's opaque details, or nil.
func (r *RawResult) AuditDetails(name string) any {
	a, ok := r.Audits[name]
	if !ok {
		return nil
	}
	return a.Details
}
