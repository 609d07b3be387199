package store

import (
	"context"
	"sync"
	"time"

	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// MemStore is an in-process Store. Ids are assigned under a single mutex
// together with the URL index update, so concurrent writers never observe
// duplicate or out-of-order ids.
type MemStore struct {
	mu          sync.Mutex
	reports     map[int64]models.AnalysisReport
	urlIndex    map[string]int64
	users       map[int64]models.User
	usersByName map[string]int64
	nextReport  int64
	nextUser    int64
	freshness   time.Duration

	// now is swappable for freshness-window tests.
	now func() time.Time
}

// NewMemStore creates an empty MemStore. A non-positive freshness falls
// back to DefaultFreshness.
func NewMemStore(freshness time.Duration) *MemStore {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &MemStore{
		reports:     make(map[int64]models.AnalysisReport),
		urlIndex:    make(map[string]int64),
		users:       make(map[int64]models.User),
		usersByName: make(map[string]int64),
		nextReport:  1,
		nextUser:    1,
		freshness:   freshness,
		now:         time.Now,
	}
}

func (s *MemStore) Ping(context.Context) error { return nil }

func (s *MemStore) CreateReport(_ context.Context, report *models.AnalysisReport) (*models.AnalysisReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *report
	stored.ID = s.nextReport
	s.nextReport++
	stored.AnalysisTimestamp = s.now().UTC()

	s.reports[stored.ID] = stored
	s.urlIndex[stored.URL] = stored.ID

	out := stored
	return &out, nil
}

func (s *MemStore) GetReport(_ context.Context, id int64) (*models.AnalysisReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := report
	return &out, nil
}

func (s *MemStore) GetFreshReport(_ context.Context, url string) (*models.AnalysisReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.urlIndex[url]
	if !ok {
		return nil, ErrNotFound
	}
	report, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().Sub(report.AnalysisTimestamp) >= s.freshness {
		return nil, ErrNotFound
	}
	out := report
	return &out, nil
}

func (s *MemStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByName[user.Username]; exists {
		return nil, ErrDuplicateKey
	}

	stored := *user
	stored.ID = s.nextUser
	s.nextUser++
	stored.CreatedAt = s.now().UTC()

	s.users[stored.ID] = stored
	s.usersByName[stored.Username] = stored.ID

	out := stored
	return &out, nil
}

func (s *MemStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usersByName[username]
	if !ok {
		return nil, ErrNotFound
	}
	user := s.users[id]
	out := user
	return &out, nil
}

// SetNowFunc overrides the store's clock. Test helper.
func (s *MemStore) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Compile-time check that MemStore implements Store.
var _ Store = (*MemStore)(nil)
