package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hireloop/matchwise/internal/access"
	"github.com/hireloop/matchwise/internal/domain"
	"github.com/hireloop/matchwise/internal/matching"
	"github.com/hireloop/matchwise/internal/ports"
)

type stubProfiles map[string]*domain.Candidate

func (s stubProfiles) GetProfile(_ context.Context, id string) (*domain.Candidate, error) {
	c, ok := s[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return c, nil
}

type stubJobs struct {
	jobs    []domain.Job
	listErr error
}

func (s *stubJobs) GetJob(_ context.Context, id string) (*domain.Job, error) {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return &s.jobs[i], nil
		}
	}
	return nil, ports.ErrNotFound
}

func (s *stubJobs) ListActiveMatchableJobs(context.Context) ([]domain.Job, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.jobs, nil
}

type stubCandidates struct {
	list    []domain.Candidate
	listErr error
}

func (s *stubCandidates) ListMatchableCandidates(context.Context) ([]domain.Candidate, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.list, nil
}

type stubApplications struct {
	apps []domain.Application
}

func (s *stubApplications) FindApplication(_ context.Context, candidateID, jobID string) (*domain.Application, error) {
	for i := range s.apps {
		if s.apps[i].CandidateID == candidateID && s.apps[i].JobID == jobID {
			return &s.apps[i], nil
		}
	}
	return nil, ports.ErrNotFound
}

func (s *stubApplications) ListForJob(_ context.Context, jobID string) ([]domain.Application, error) {
	var out []domain.Application
	for _, app := range s.apps {
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out, nil
}

type memSubscriptions struct {
	mu   sync.Mutex
	subs map[string]*domain.Subscription
}

func (m *memSubscriptions) GetActiveSubscription(_ context.Context, actorID string) (*domain.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[actorID]
	if !ok || !sub.Active {
		return nil, ports.ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

func (m *memSubscriptions) IncrementUsage(_ context.Context, actorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[actorID]
	if !ok || !sub.Active {
		return ports.ErrNotFound
	}
	if !sub.Unlimited() && sub.ApplicationsUsed >= sub.ApplicationLimit {
		return ports.ErrQuotaExceeded
	}
	sub.ApplicationsUsed++
	return nil
}

type memCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemCache() *memCache { return &memCache{m: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.m[key]
	return payload, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = payload
	return nil
}

// scriptedStrategy returns canned overall scores keyed by "candidate/job".
type scriptedStrategy struct {
	scores map[string]float64
	errs   map[string]error
}

func (s *scriptedStrategy) Name() string { return "scripted" }

func (s *scriptedStrategy) Score(_ context.Context, rec *matching.ComparisonRecord) (*matching.ScoreBreakdown, error) {
	key := rec.CandidateID + "/" + rec.JobID
	if err, ok := s.errs[key]; ok {
		return nil, err
	}
	score, ok := s.scores[key]
	if !ok {
		return nil, fmt.Errorf("no scripted score for %s", key)
	}
	return &matching.ScoreBreakdown{Overall: score}, nil
}

func newTestService(t *testing.T, profiles stubProfiles, jobs *stubJobs, cands *stubCandidates, apps *stubApplications, subs map[string]*domain.Subscription, strategy matching.Strategy, cache ports.PageCache) *Service {
	t.Helper()
	engine := matching.NewEngine(profiles, nil, []matching.Strategy{strategy}, 0, zap.NewNop())
	gate := access.NewGate(&memSubscriptions{subs: subs}, zap.NewNop())
	return NewService(Deps{
		Profiles:     profiles,
		Jobs:         jobs,
		Candidates:   cands,
		Applications: apps,
		Engine:       engine,
		Access:       gate,
		Cache:        cache,
		Logger:       zap.NewNop(),
	}, Config{Concurrency: 3, CacheTTL: time.Minute})
}

func seeker(id string) *domain.Candidate {
	return &domain.Candidate{ID: id, Name: "Seeker " + id, MatchingEnabled: true}
}

func TestDiscoverJobsPaginationAndOrdering(t *testing.T) {
	profiles := stubProfiles{"cand-1": seeker("cand-1")}
	strategy := &scriptedStrategy{scores: map[string]float64{}}

	jobs := &stubJobs{}
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("job-%02d", i)
		jobs.jobs = append(jobs.jobs, domain.Job{ID: id, Active: true, MatchingEnabled: true})
		strategy.scores["cand-1/"+id] = float64(99 - i)
	}

	svc := newTestService(t, profiles, jobs, &stubCandidates{}, &stubApplications{}, nil, strategy, nil)

	page, err := svc.DiscoverJobsForCandidate(context.Background(), "cand-1", 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.TotalElements != 25 {
		t.Fatalf("expected 25 total elements, got %d", page.TotalElements)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if len(page.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(page.Items))
	}
	if got := page.Items[0].Outcome.ScorePercent; got != 89 {
		t.Fatalf("expected second page to start at 89, got %v", got)
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].Outcome.ScorePercent > page.Items[i-1].Outcome.ScorePercent {
			t.Fatalf("scores not non-increasing at index %d", i)
		}
	}
}

func TestDiscoverJobsFiltersGateAndThreshold(t *testing.T) {
	salary := 100000
	lowCeiling := 50000
	profile := seeker("cand-1")
	profile.ExpectedSalary = &salary
	profiles := stubProfiles{"cand-1": profile}

	jobs := &stubJobs{jobs: []domain.Job{
		{ID: "strong", Active: true, MatchingEnabled: true},
		{ID: "weak", Active: true, MatchingEnabled: true},
		{ID: "underpaying", Active: true, MatchingEnabled: true, SalaryMax: &lowCeiling},
	}}
	strategy := &scriptedStrategy{scores: map[string]float64{
		"cand-1/strong": 85,
		"cand-1/weak":   69.99,
	}}

	svc := newTestService(t, profiles, jobs, &stubCandidates{}, &stubApplications{}, nil, strategy, nil)

	page, err := svc.DiscoverJobsForCandidate(context.Background(), "cand-1", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 1 {
		t.Fatalf("expected only the strong match, got %d elements", page.TotalElements)
	}
	if page.Items[0].Job.ID != "strong" {
		t.Fatalf("expected job strong, got %s", page.Items[0].Job.ID)
	}
}

func TestDiscoverJobsPairFailureDoesNotAbortSweep(t *testing.T) {
	profiles := stubProfiles{"cand-1": seeker("cand-1")}
	jobs := &stubJobs{jobs: []domain.Job{
		{ID: "good", Active: true, MatchingEnabled: true},
		{ID: "broken", Active: true, MatchingEnabled: true},
	}}
	strategy := &scriptedStrategy{
		scores: map[string]float64{"cand-1/good": 90},
		errs:   map[string]error{"cand-1/broken": errors.New("backend exploded")},
	}

	svc := newTestService(t, profiles, jobs, &stubCandidates{}, &stubApplications{}, nil, strategy, nil)

	page, err := svc.DiscoverJobsForCandidate(context.Background(), "cand-1", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 1 || page.Items[0].Job.ID != "good" {
		t.Fatalf("expected the surviving pair only, got %+v", page.Items)
	}
}

func TestDiscoverJobsCorpusFetchError(t *testing.T) {
	profiles := stubProfiles{"cand-1": seeker("cand-1")}
	jobs := &stubJobs{listErr: errors.New("connection refused")}

	svc := newTestService(t, profiles, jobs, &stubCandidates{}, &stubApplications{}, nil, &scriptedStrategy{}, nil)

	_, err := svc.DiscoverJobsForCandidate(context.Background(), "cand-1", 0, 10)
	if !errors.Is(err, ErrCorpusFetch) {
		t.Fatalf("expected ErrCorpusFetch, got %v", err)
	}
}

func TestDiscoverJobsMatchingDisabled(t *testing.T) {
	profile := seeker("cand-1")
	profile.MatchingEnabled = false
	profiles := stubProfiles{"cand-1": profile}

	svc := newTestService(t, profiles, &stubJobs{}, &stubCandidates{}, &stubApplications{}, nil, &scriptedStrategy{}, nil)

	_, err := svc.DiscoverJobsForCandidate(context.Background(), "cand-1", 0, 10)
	if !errors.Is(err, ErrMatchingDisabled) {
		t.Fatalf("expected ErrMatchingDisabled, got %v", err)
	}
}

func TestDiscoverJobsServedFromCache(t *testing.T) {
	profiles := stubProfiles{"cand-1": seeker("cand-1")}
	jobs := &stubJobs{jobs: []domain.Job{{ID: "job-1", Active: true, MatchingEnabled: true}}}
	strategy := &scriptedStrategy{scores: map[string]float64{"cand-1/job-1": 90}}
	cache := newMemCache()

	svc := newTestService(t, profiles, jobs, &stubCandidates{}, &stubApplications{}, nil, strategy, cache)

	first, err := svc.DiscoverJobsForCandidate(context.Background(), "cand-1", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A corpus failure after the first call proves the second one never
	// touches the collaborators.
	jobs.listErr = errors.New("corpus offline")

	second, err := svc.DiscoverJobsForCandidate(context.Background(), "cand-1", 0, 10)
	if err != nil {
		t.Fatalf("expected cache hit, got error: %v", err)
	}
	if second.TotalElements != first.TotalElements || len(second.Items) != len(first.Items) {
		t.Fatalf("cached page differs: %+v vs %+v", second, first)
	}
	if second.Items[0].Outcome.ScorePercent != first.Items[0].Outcome.ScorePercent {
		t.Fatal("cached score differs from original")
	}
}

func TestTopMatchesAndMatchCount(t *testing.T) {
	profiles := stubProfiles{"cand-1": seeker("cand-1")}
	strategy := &scriptedStrategy{scores: map[string]float64{}}
	jobs := &stubJobs{}
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("job-%d", i)
		jobs.jobs = append(jobs.jobs, domain.Job{ID: id, Active: true, MatchingEnabled: true})
		strategy.scores["cand-1/"+id] = float64(95 - i)
	}

	svc := newTestService(t, profiles, jobs, &stubCandidates{}, &stubApplications{}, nil, strategy, nil)

	top, err := svc.TopMatches(context.Background(), "cand-1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 3 || top[0].Job.ID != "job-0" {
		t.Fatalf("unexpected top matches: %+v", top)
	}

	count, err := svc.MatchCount(context.Background(), "cand-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 matches, got %d", count)
	}
}

func TestSingleMatchNotEligible(t *testing.T) {
	salary := 100000
	lowCeiling := 50000
	profile := seeker("cand-1")
	profile.ExpectedSalary = &salary
	profiles := stubProfiles{"cand-1": profile}

	jobs := &stubJobs{jobs: []domain.Job{
		{ID: "underpaying", Active: true, MatchingEnabled: true, SalaryMax: &lowCeiling},
		{ID: "mediocre", Active: true, MatchingEnabled: true},
	}}
	strategy := &scriptedStrategy{scores: map[string]float64{"cand-1/mediocre": 60}}

	svc := newTestService(t, profiles, jobs, &stubCandidates{}, &stubApplications{}, nil, strategy, nil)
	ctx := context.Background()

	var notEligible *NotEligibleError
	_, err := svc.SingleMatch(ctx, "cand-1", "underpaying")
	if !errors.As(err, &notEligible) {
		t.Fatalf("expected NotEligibleError, got %v", err)
	}
	if len(notEligible.Reasons) == 0 {
		t.Fatal("expected gate reasons on the error")
	}

	notEligible = nil
	_, err = svc.SingleMatch(ctx, "cand-1", "mediocre")
	if !errors.As(err, &notEligible) {
		t.Fatalf("expected NotEligibleError, got %v", err)
	}
	if notEligible.Shortfall != 10 {
		t.Fatalf("expected shortfall 10, got %v", notEligible.Shortfall)
	}
}

func TestDiscoverCandidatesApplicantsFirst(t *testing.T) {
	jobs := &stubJobs{jobs: []domain.Job{
		{ID: "job-1", RecruiterID: "rec-1", OrganizationID: "org-1", Active: true, MatchingEnabled: true},
	}}
	cands := &stubCandidates{list: []domain.Candidate{
		*seeker("prospect"),
		*seeker("applicant"),
	}}
	apps := &stubApplications{apps: []domain.Application{
		{CandidateID: "applicant", JobID: "job-1", Status: "SUBMITTED"},
	}}
	strategy := &scriptedStrategy{scores: map[string]float64{
		"prospect/job-1":  95,
		"applicant/job-1": 75,
	}}

	svc := newTestService(t, stubProfiles{}, jobs, cands, apps, nil, strategy, nil)
	actor := domain.Actor{ID: "rec-1", Role: domain.RoleRecruiter, OrganizationID: "org-1"}

	page, err := svc.DiscoverCandidatesForJob(context.Background(), actor, "job-1", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("expected 2 elements, got %d", page.TotalElements)
	}
	if page.Items[0].Candidate.ID != "applicant" {
		t.Fatalf("expected the applicant first despite the lower score, got %s", page.Items[0].Candidate.ID)
	}
	if page.Items[0].ApplicationStatus != "SUBMITTED" {
		t.Fatalf("expected application status carried, got %q", page.Items[0].ApplicationStatus)
	}
	if page.Items[1].Candidate.ID != "prospect" || page.Items[1].Applied {
		t.Fatalf("unexpected second entry: %+v", page.Items[1])
	}
}

// A non-owning recruiter whose plan covers the listing but not the
// application details gets the redacted stub, which still counts in the
// totals.
func TestDiscoverCandidatesRedactsWithoutQuota(t *testing.T) {
	jobs := &stubJobs{jobs: []domain.Job{
		{ID: "job-1", RecruiterID: "rec-1", OrganizationID: "org-1", Active: true, MatchingEnabled: true, Restricted: true},
	}}
	cands := &stubCandidates{list: []domain.Candidate{*seeker("applicant")}}
	apps := &stubApplications{apps: []domain.Application{
		{CandidateID: "applicant", JobID: "job-1", Status: "SUBMITTED"},
	}}
	strategy := &scriptedStrategy{scores: map[string]float64{"applicant/job-1": 88}}

	// One slot: the listing grant consumes it, the application check cannot.
	subs := map[string]*domain.Subscription{
		"rec-2": {Active: true, Plan: "basic", ApplicationsUsed: 0, ApplicationLimit: 1},
	}

	svc := newTestService(t, stubProfiles{}, jobs, cands, apps, subs, strategy, nil)
	stranger := domain.Actor{ID: "rec-2", Role: domain.RoleRecruiter, OrganizationID: "org-2"}

	page, err := svc.DiscoverCandidatesForJob(context.Background(), stranger, "job-1", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 1 {
		t.Fatalf("redacted entry must still count, got %d elements", page.TotalElements)
	}

	entry := page.Items[0]
	if entry.Candidate != nil || entry.Outcome != nil {
		t.Fatalf("expected redacted stub, got %+v", entry)
	}
	if entry.ApplicationStatus != StatusRestricted {
		t.Fatalf("expected status %q, got %q", StatusRestricted, entry.ApplicationStatus)
	}
	if entry.Restriction != access.MsgQuotaExhausted {
		t.Fatalf("expected restriction message, got %q", entry.Restriction)
	}
}

// The owning recruiter needs no subscription at all: the listing and every
// applicant are visible and no quota is involved.
func TestDiscoverCandidatesOwnerNeedsNoSubscription(t *testing.T) {
	jobs := &stubJobs{jobs: []domain.Job{
		{ID: "job-1", RecruiterID: "rec-1", OrganizationID: "org-1", Active: true, MatchingEnabled: true, Restricted: true},
	}}
	cands := &stubCandidates{list: []domain.Candidate{*seeker("applicant")}}
	apps := &stubApplications{apps: []domain.Application{
		{CandidateID: "applicant", JobID: "job-1", Status: "SUBMITTED"},
	}}
	strategy := &scriptedStrategy{scores: map[string]float64{"applicant/job-1": 88}}

	svc := newTestService(t, stubProfiles{}, jobs, cands, apps, nil, strategy, nil)
	owner := domain.Actor{ID: "rec-1", Role: domain.RoleRecruiter, OrganizationID: "org-1"}

	page, err := svc.DiscoverCandidatesForJob(context.Background(), owner, "job-1", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 1 {
		t.Fatalf("expected 1 element, got %d", page.TotalElements)
	}
	entry := page.Items[0]
	if entry.Candidate == nil || entry.Candidate.ID != "applicant" {
		t.Fatalf("expected full applicant entry for the owner, got %+v", entry)
	}
	if entry.Restriction != "" {
		t.Fatalf("expected no restriction for the owner, got %q", entry.Restriction)
	}
}

func TestDiscoverCandidatesGrantSpendsQuotaOnPageOnly(t *testing.T) {
	jobs := &stubJobs{jobs: []domain.Job{
		{ID: "job-1", RecruiterID: "rec-1", OrganizationID: "org-1", Active: true, MatchingEnabled: true, Restricted: true},
	}}
	cands := &stubCandidates{list: []domain.Candidate{
		*seeker("app-1"),
		*seeker("app-2"),
		*seeker("app-3"),
	}}
	apps := &stubApplications{apps: []domain.Application{
		{CandidateID: "app-1", JobID: "job-1", Status: "SUBMITTED"},
		{CandidateID: "app-2", JobID: "job-1", Status: "SUBMITTED"},
		{CandidateID: "app-3", JobID: "job-1", Status: "SUBMITTED"},
	}}
	strategy := &scriptedStrategy{scores: map[string]float64{
		"app-1/job-1": 90,
		"app-2/job-1": 85,
		"app-3/job-1": 80,
	}}
	subs := map[string]*domain.Subscription{
		"rec-2": {Active: true, Plan: "basic", ApplicationsUsed: 0, ApplicationLimit: 10},
	}

	svc := newTestService(t, stubProfiles{}, jobs, cands, apps, subs, strategy, nil)
	stranger := domain.Actor{ID: "rec-2", Role: domain.RoleRecruiter, OrganizationID: "org-2"}

	page, err := svc.DiscoverCandidatesForJob(context.Background(), stranger, "job-1", 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 || page.TotalElements != 3 {
		t.Fatalf("unexpected page shape: %+v", page)
	}
	for i, entry := range page.Items {
		if entry.Candidate == nil {
			t.Fatalf("entry %d unexpectedly redacted", i)
		}
	}

	// One unit for the listing plus one per returned row, never the full
	// corpus.
	if used := subs["rec-2"].ApplicationsUsed; used != 3 {
		t.Fatalf("expected 3 quota units spent, got %d", used)
	}
}

// Applicants stay listed even when they fail the gate or score below the
// threshold; only prospects are filtered, and weak applicants sort after
// strong ones.
func TestDiscoverCandidatesKeepsWeakApplicants(t *testing.T) {
	salary := 100000
	lowCeiling := 50000
	gated := *seeker("gated-applicant")
	gated.ExpectedSalary = &salary

	jobs := &stubJobs{jobs: []domain.Job{
		{ID: "job-1", RecruiterID: "rec-1", OrganizationID: "org-1", Active: true, MatchingEnabled: true, SalaryMax: &lowCeiling},
	}}
	cands := &stubCandidates{list: []domain.Candidate{
		*seeker("strong-applicant"),
		*seeker("weak-applicant"),
		gated,
		*seeker("weak-prospect"),
	}}
	apps := &stubApplications{apps: []domain.Application{
		{CandidateID: "strong-applicant", JobID: "job-1", Status: "SUBMITTED"},
		{CandidateID: "weak-applicant", JobID: "job-1", Status: "SUBMITTED"},
		{CandidateID: "gated-applicant", JobID: "job-1", Status: "SUBMITTED"},
	}}
	strategy := &scriptedStrategy{scores: map[string]float64{
		"strong-applicant/job-1": 90,
		"weak-applicant/job-1":   30,
		"weak-prospect/job-1":    30,
	}}

	svc := newTestService(t, stubProfiles{}, jobs, cands, apps, nil, strategy, nil)
	owner := domain.Actor{ID: "rec-1", Role: domain.RoleRecruiter, OrganizationID: "org-1"}

	page, err := svc.DiscoverCandidatesForJob(context.Background(), owner, "job-1", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 3 {
		t.Fatalf("expected all 3 applicants and no weak prospect, got %d elements", page.TotalElements)
	}
	if page.Items[0].Candidate.ID != "strong-applicant" {
		t.Fatalf("expected the strong applicant first, got %s", page.Items[0].Candidate.ID)
	}
	if page.Items[1].Candidate.ID != "weak-applicant" {
		t.Fatalf("expected the weak applicant second, got %s", page.Items[1].Candidate.ID)
	}
	if page.Items[2].Candidate.ID != "gated-applicant" {
		t.Fatalf("expected the gate-failing applicant last, got %s", page.Items[2].Candidate.ID)
	}
	if page.Items[2].Outcome == nil || page.Items[2].Outcome.PassesGate {
		t.Fatalf("expected the gate failure attached for context, got %+v", page.Items[2].Outcome)
	}
	for _, entry := range page.Items {
		if entry.Candidate.ID == "weak-prospect" {
			t.Fatal("below-threshold prospect must not be listed")
		}
	}
}

func TestDiscoverCandidatesAccessDenied(t *testing.T) {
	jobs := &stubJobs{jobs: []domain.Job{
		{ID: "job-1", RecruiterID: "rec-1", OrganizationID: "org-1", Active: true, MatchingEnabled: true, Restricted: true},
	}}

	svc := newTestService(t, stubProfiles{}, jobs, &stubCandidates{}, &stubApplications{}, nil, &scriptedStrategy{}, nil)

	// A recruiter whose plan does not cover the foreign restricted job.
	stranger := domain.Actor{ID: "rec-2", Role: domain.RoleRecruiter, OrganizationID: "org-2"}
	_, err := svc.DiscoverCandidatesForJob(context.Background(), stranger, "job-1", 0, 10)
	if !errors.Is(err, ErrJobAccessDenied) {
		t.Fatalf("expected ErrJobAccessDenied, got %v", err)
	}

	// Candidates never see the recruiter view.
	cand := domain.Actor{ID: "cand-1", Role: domain.RoleCandidate}
	_, err = svc.DiscoverCandidatesForJob(context.Background(), cand, "job-1", 0, 10)
	if !errors.Is(err, ErrJobAccessDenied) {
		t.Fatalf("expected ErrJobAccessDenied for a candidate, got %v", err)
	}
}
