// Package store provides persistence for analysis reports and users.
// Two implementations exist: an in-memory store (default) and a
// Postgres-backed store selected via STORE_BACKEND.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
)

// DefaultFreshness is how long a stored report is served as a cache hit
// for its URL. Stale reports remain retrievable by id.
const DefaultFreshness = 24 * time.Hour

// Store is the data access interface. All persistence goes through here.
// Implementations must be safe for concurrent use and must assign report
// ids monotonically: the id counter and the URL index update are a single
// atomic step per write.
type Store interface {
	Ping(ctx context.Context) error

	// CreateReport assigns a fresh id and timestamp and persists the
	// report. The URL index is last-write-wins per URL.
	CreateReport(ctx context.Context, report *models.AnalysisReport) (*models.AnalysisReport, error)
	// GetReport returns the report with the given id, or ErrNotFound.
	GetReport(ctx context.Context, id int64) (*models.AnalysisReport, error)
	// GetFreshReport returns the most recently stored report for url if it
	// is still inside the freshness window, or ErrNotFound. Stale entries
	// are not deleted.
	GetFreshReport(ctx context.Context, url string) (*models.AnalysisReport, error)

	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
