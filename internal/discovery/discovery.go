// Package discovery runs the matching engine over a corpus: it iterates jobs
// for a candidate or candidates for a job, scores each pair with bounded
// concurrency, filters, sorts, paginates, applies access control to
// applicant data and memoizes the resulting pages.
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hireloop/matchwise/internal/access"
	"github.com/hireloop/matchwise/internal/domain"
	"github.com/hireloop/matchwise/internal/matching"
	"github.com/hireloop/matchwise/internal/ports"
)

// ErrCorpusFetch marks a failure to read the underlying candidate/job
// collections. Fatal for the whole request, unlike per-pair scoring failures.
var ErrCorpusFetch = errors.New("corpus fetch failed")

// ErrMatchingDisabled is returned when the subject opted out of matching.
var ErrMatchingDisabled = errors.New("matching is disabled for this profile")

// ErrJobAccessDenied is returned when the actor may not view the job's
// applicants at all: not a recruiter, or a foreign restricted job their plan
// does not cover.
var ErrJobAccessDenied = errors.New("actor may not view this job's applicants")

// StatusRestricted is the application status reported on redacted entries.
const StatusRestricted = "RESTRICTED"

// NotEligibleError reports a single-pair match that failed the gate or the
// threshold. It is a client-visible condition, distinct from a system fault.
type NotEligibleError struct {
	// Reasons carries the gate failure reasons when the gate failed.
	Reasons []string
	// Shortfall is how far the overall score fell below the threshold when
	// the gate passed but the score did not qualify.
	Shortfall float64
}

func (e *NotEligibleError) Error() string {
	if len(e.Reasons) > 0 {
		return fmt.Sprintf("pair is not eligible: %s", strings.Join(e.Reasons, "; "))
	}
	return fmt.Sprintf("match score %.2f points below threshold", e.Shortfall)
}

// JobMatch pairs a job with its match outcome for the candidate view.
type JobMatch struct {
	Job     domain.Job            `json:"job"`
	Outcome matching.MatchOutcome `json:"outcome"`
}

// CandidateMatch is one entry of the recruiter view. A redacted entry has a
// nil Candidate and Outcome, StatusRestricted and an explanatory Restriction;
// it still counts toward the page totals.
type CandidateMatch struct {
	Candidate         *domain.Candidate      `json:"candidate"`
	Outcome           *matching.MatchOutcome `json:"outcome,omitempty"`
	Applied           bool                   `json:"applied"`
	ApplicationStatus string                 `json:"application_status,omitempty"`
	Restriction       string                 `json:"restriction,omitempty"`
}

// JobMatchPage is one page of the candidate view.
type JobMatchPage struct {
	Items         []JobMatch `json:"items"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
	TotalElements int        `json:"total_elements"`
	TotalPages    int        `json:"total_pages"`
}

// CandidateMatchPage is one page of the recruiter view.
type CandidateMatchPage struct {
	Items         []CandidateMatch `json:"items"`
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	TotalElements int              `json:"total_elements"`
	TotalPages    int              `json:"total_pages"`
}

const (
	defaultPageSize    = 20
	defaultConcurrency = 4
	defaultCacheTTL    = 2 * time.Minute
)

// Deps aggregates the collaborators of the discovery service.
type Deps struct {
	Profiles     ports.ProfileReader
	Jobs         ports.JobReader
	Candidates   ports.CandidateReader
	Applications ports.ApplicationReader
	Engine       *matching.Engine
	Access       *access.Gate
	Cache        ports.PageCache
	Logger       *zap.Logger
}

// Config tunes the service.
type Config struct {
	// Concurrency bounds the per-request scoring worker pool. Size it to the
	// remote backend's safe concurrent-call budget.
	Concurrency int
	// CacheTTL bounds page staleness. Keep it short relative to how often
	// profiles and jobs mutate; staleness only affects ranking freshness.
	CacheTTL time.Duration
}

// Service orchestrates discovery in both directions.
type Service struct {
	profiles   ports.ProfileReader
	jobs       ports.JobReader
	candidates ports.CandidateReader
	apps       ports.ApplicationReader
	engine     *matching.Engine
	access     *access.Gate
	cache      ports.PageCache
	conc       int
	ttl        time.Duration
	logger     *zap.Logger
}

func NewService(deps Deps, cfg Config) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		profiles:   deps.Profiles,
		jobs:       deps.Jobs,
		candidates: deps.Candidates,
		apps:       deps.Applications,
		engine:     deps.Engine,
		access:     deps.Access,
		cache:      deps.Cache,
		conc:       cfg.Concurrency,
		ttl:        cfg.CacheTTL,
		logger:     log,
	}
}

// pageKey builds the structural cache key for a discovery page: subject
// identity plus the canonical query parameters, never a stringified request
// object.
func pageKey(direction, subjectID string, page, size int) string {
	return fmt.Sprintf("discovery:%s:%s:p%d:s%d", direction, subjectID, page, size)
}

// cachedPage loads and decodes a cached page into out. Cache failures are
// logged and treated as misses; the cache is an optimization, never a
// correctness dependency.
func (s *Service) cachedPage(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("page cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		s.logger.Warn("page cache payload unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) storePage(ctx context.Context, key string, page any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(page)
	if err != nil {
		s.logger.Warn("page cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		s.logger.Warn("page cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// normalizePaging applies defaults; pagination is zero-based.
func normalizePaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	return page, size
}

// pageBounds returns the [start, end) slice bounds for the page.
func pageBounds(total, page, size int) (int, int) {
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

func totalPages(total, size int) int {
	if total == 0 {
		return 0
	}
	return (total + size - 1) / size
}
