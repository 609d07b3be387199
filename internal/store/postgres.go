package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// PostgresStore implements the Store interface using pgx/v5. Report ids
// come from a serial column, so monotonic assignment is the database's
// concern; check, vitals, and recommendation payloads live in jsonb
// columns matching the original table layout.
type PostgresStore struct {
	pool      *pgxpool.Pool
	freshness time.Duration
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool, freshness time.Duration) *PostgresStore {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &PostgresStore{pool: pool, freshness: freshness}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const reportColumns = `id, url, overall_score, performance_score, accessibility_score,
	best_practices_score, seo_score, mobile_viewport, touch_elements, text_size,
	content_width, core_web_vitals, recommendations, analysis_timestamp`

func (s *PostgresStore) CreateReport(ctx context.Context, report *models.AnalysisReport) (*models.AnalysisReport, error) {
	viewport, err := json.Marshal(report.MobileViewport)
	if err != nil {
		return nil, fmt.Errorf("marshal mobile viewport: %w", err)
	}
	touch, err := json.Marshal(report.TouchElements)
	if err != nil {
		return nil, fmt.Errorf("marshal touch elements: %w", err)
	}
	textSize, err := json.Marshal(report.TextSize)
	if err != nil {
		return nil, fmt.Errorf("marshal text size: %w", err)
	}
	width, err := json.Marshal(report.ContentWidth)
	if err != nil {
		return nil, fmt.Errorf("marshal content width: %w", err)
	}
	vitals, err := json.Marshal(report.CoreWebVitals)
	if err != nil {
		return nil, fmt.Errorf("marshal core web vitals: %w", err)
	}
	recs, err := json.Marshal(report.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("marshal recommendations: %w", err)
	}

	stored := *report
	err = s.pool.QueryRow(ctx,
		`INSERT INTO analysis_reports (url, overall_score, performance_score, accessibility_score,
			best_practices_score, seo_score, mobile_viewport, touch_elements, text_size,
			content_width, core_web_vitals, recommendations, analysis_timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		 RETURNING id, analysis_timestamp`,
		report.URL, report.OverallScore, report.PerformanceScore, report.AccessibilityScore,
		report.BestPracticesScore, report.SEOScore, viewport, touch, textSize,
		width, vitals, recs,
	).Scan(&stored.ID, &stored.AnalysisTimestamp)
	if err != nil {
		return nil, fmt.Errorf("create analysis report: %w", err)
	}
	return &stored, nil
}

func (s *PostgresStore) GetReport(ctx context.Context, id int64) (*models.AnalysisReport, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM analysis_reports WHERE id = $1`, id)
	return scanReport(row)
}

func (s *PostgresStore) GetFreshReport(ctx context.Context, url string) (*models.AnalysisReport, error) {
	cutoff := time.Now().UTC().Add(-s.freshness)
	row := s.pool.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM analysis_reports
		 WHERE url = $1 AND analysis_timestamp > $2
		 ORDER BY id DESC LIMIT 1`, url, cutoff)
	return scanReport(row)
}

func scanReport(row pgx.Row) (*models.AnalysisReport, error) {
	var (
		r                                             models.AnalysisReport
		viewport, touch, textSize, width, vitals, rec []byte
	)
	err := row.Scan(&r.ID, &r.URL, &r.OverallScore, &r.PerformanceScore, &r.AccessibilityScore,
		&r.BestPracticesScore, &r.SEOScore, &viewport, &touch, &textSize,
		&width, &vitals, &rec, &r.AnalysisTimestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan analysis report: %w", err)
	}

	for _, field := range []struct {
		data []byte
		dst  any
	}{
		{viewport, &r.MobileViewport},
		{touch, &r.TouchElements},
		{textSize, &r.TextSize},
		{width, &r.ContentWidth},
		{vitals, &r.CoreWebVitals},
		{rec, &r.Recommendations},
	} {
		if err := json.Unmarshal(field.data, field.dst); err != nil {
			return nil, fmt.Errorf("unmarshal report field: %w", err)
		}
	}
	return &r, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	stored := *user
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, created_at)
		 VALUES ($1, $2, NOW())
		 RETURNING id, created_at`,
		user.Username, user.PasswordHash,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &stored, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)
