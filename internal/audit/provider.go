// Package audit orchestrates mobile-friendliness analysis: provider
// invocation with fallback, normalization, recommendation derivation, and
// report storage.
package audit

import (
	"context"
	"errors"

	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

var (
	// ErrInvalidURL is returned for input that does not parse as an
	// absolute http(s) URL with a host.
	ErrInvalidURL = errors.New("invalid url")
	// ErrAnalysisFailed is returned when both the primary and the
	// fallback provider fail.
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrEngineUnavailable is returned by the primary provider when the
	// audit engine binary cannot be run.
	ErrEngineUnavailable = errors.New("audit engine unavailable")
)

// Provider runs a page audit and returns the engine-native raw result.
// Never call a concrete provider directly from handlers — always inject
// this interface.
type Provider interface {
	// Analyze audits the given URL. Implementations must honor ctx
	// cancellation; a cancelled invocation is a failure, never a source
	// of partial results.
	Analyze(ctx context.Context, url string) (*models.RawResult, error)
	// Name returns the provider identifier (e.g., "lighthouse", "simulated").
	Name() string
}
