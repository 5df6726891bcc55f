package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hireloop/matchwise/internal/domain"
	"github.com/hireloop/matchwise/internal/logger"
	"github.com/hireloop/matchwise/internal/matching"
	"github.com/hireloop/matchwise/internal/ports"
)

// DiscoverJobsForCandidate scores the candidate against every active
// matchable job and returns the requested page of qualifying matches, ranked
// by score descending.
func (s *Service) DiscoverJobsForCandidate(ctx context.Context, candidateID string, page, size int) (*JobMatchPage, error) {
	page, size = normalizePaging(page, size)
	key := pageKey("jobs", candidateID, page, size)

	var cached JobMatchPage
	if s.cachedPage(ctx, key, &cached) {
		s.logger.Debug("serving discovery page from cache", zap.String("key", key))
		return &cached, nil
	}

	profile, err := s.profiles.GetProfile(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("get candidate %q: %w", candidateID, err)
	}
	if !profile.MatchingEnabled {
		return nil, ErrMatchingDisabled
	}

	jobs, err := s.jobs.ListActiveMatchableJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %v", ErrCorpusFetch, err)
	}

	matches, err := s.scoreJobs(ctx, profile, jobs)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Outcome.ScorePercent != matches[j].Outcome.ScorePercent {
			return matches[i].Outcome.ScorePercent > matches[j].Outcome.ScorePercent
		}
		return matches[i].Job.ID < matches[j].Job.ID
	})

	total := len(matches)
	start, end := pageBounds(total, page, size)
	result := &JobMatchPage{
		Items:         matches[start:end],
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages(total, size),
	}
	if result.Items == nil {
		result.Items = []JobMatch{}
	}

	s.storePage(ctx, key, result)

	return result, nil
}

// TopMatches returns the best qualifying matches for the candidate, at most
// limit of them.
func (s *Service) TopMatches(ctx context.Context, candidateID string, limit int) ([]JobMatch, error) {
	page, err := s.DiscoverJobsForCandidate(ctx, candidateID, 0, limit)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// MatchCount reports how many jobs currently qualify for the candidate.
func (s *Service) MatchCount(ctx context.Context, candidateID string) (int, error) {
	page, err := s.DiscoverJobsForCandidate(ctx, candidateID, 0, 1)
	if err != nil {
		return 0, err
	}
	return page.TotalElements, nil
}

// SingleMatch scores one candidate/job pair on demand, bypassing the page
// cache. A gate failure or a below-threshold score yields a NotEligibleError
// so callers can distinguish ineligibility from system faults.
func (s *Service) SingleMatch(ctx context.Context, candidateID, jobID string) (*matching.MatchOutcome, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job %q: %w", jobID, err)
	}

	outcome, err := s.engine.Match(ctx, candidateID, job)
	if err != nil {
		return nil, err
	}
	if !outcome.PassesGate {
		return nil, &NotEligibleError{Reasons: outcome.GateFailureReasons}
	}
	if !outcome.MeetsThreshold {
		return nil, &NotEligibleError{Shortfall: s.engine.Threshold() - outcome.ScorePercent}
	}

	return outcome, nil
}

// ApplicationStatus reports whether the candidate already applied to the job
// and the current application status when they did.
func (s *Service) ApplicationStatus(ctx context.Context, candidateID, jobID string) (string, bool, error) {
	app, err := s.apps.FindApplication(ctx, candidateID, jobID)
	if errors.Is(err, ports.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find application: %w", err)
	}
	return app.Status, true, nil
}

// scoreJobs runs the engine over the corpus with a bounded worker pool and
// keeps only the qualifying pairs. An individual pair failure is logged and
// dropped; only context cancellation aborts the sweep.
func (s *Service) scoreJobs(ctx context.Context, profile *domain.Candidate, jobs []domain.Job) ([]JobMatch, error) {
	outcomes := make([]*matching.MatchOutcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.conc)
	for i := range jobs {
		g.Go(func() error {
			outcome, err := s.engine.MatchProfile(gctx, profile, &jobs[i])
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("scoring pair failed, skipping",
					append(logger.PairFields(profile.ID, jobs[i].ID), zap.Error(err))...)
				return nil
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]JobMatch, 0, len(jobs))
	for i, outcome := range outcomes {
		if outcome == nil || !outcome.PassesGate || !outcome.MeetsThreshold {
			continue
		}
		matches = append(matches, JobMatch{Job: jobs[i], Outcome: *outcome})
	}

	return matches, nil
}
