package discovery

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hireloop/matchwise/internal/domain"
	"github.com/hireloop/matchwise/internal/logger"
)

// DiscoverCandidatesForJob scores every matchable candidate against a job
// the recruiter may view and returns the requested page, with applicants
// ranked ahead of non-applicants and score descending within each group.
// Applicants stay listed whatever their score; entries the recruiter's
// subscription does not cover are redacted in place.
func (s *Service) DiscoverCandidatesForJob(ctx context.Context, actor domain.Actor, jobID string, page, size int) (*CandidateMatchPage, error) {
	page, size = normalizePaging(page, size)

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job %q: %w", jobID, err)
	}
	if actor.Role != domain.RoleRecruiter {
		return nil, ErrJobAccessDenied
	}
	allowed, err := s.access.CanAccessJob(ctx, actor, job)
	if err != nil {
		return nil, fmt.Errorf("check job access: %w", err)
	}
	if !allowed {
		return nil, ErrJobAccessDenied
	}

	key := pageKey("candidates:"+actor.ID, jobID, page, size)
	var cached CandidateMatchPage
	if s.cachedPage(ctx, key, &cached) {
		s.logger.Debug("serving discovery page from cache", zap.String("key", key))
		return &cached, nil
	}

	candidates, err := s.candidates.ListMatchableCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list candidates: %v", ErrCorpusFetch, err)
	}

	applications, err := s.apps.ListForJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %v", ErrCorpusFetch, err)
	}
	applied := make(map[string]domain.Application, len(applications))
	for _, app := range applications {
		applied[app.CandidateID] = app
	}

	matches, err := s.scoreCandidates(ctx, candidates, job, applied)
	if err != nil {
		return nil, err
	}

	// Applicants always outrank prospects; within each group the higher
	// score wins, with candidate id as the deterministic tiebreak. An
	// applicant whose score could not be computed sorts last in its group.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Applied != matches[j].Applied {
			return matches[i].Applied
		}
		if si, sj := matchScore(matches[i]), matchScore(matches[j]); si != sj {
			return si > sj
		}
		return matches[i].Candidate.ID < matches[j].Candidate.ID
	})

	total := len(matches)
	start, end := pageBounds(total, page, size)
	items := matches[start:end]
	if items == nil {
		items = []CandidateMatch{}
	}

	// Access control runs on the returned page only, so quota is never spent
	// on rows the recruiter does not see.
	for i := range items {
		if !items[i].Applied {
			continue
		}
		if err := s.redactIfRestricted(ctx, actor, job, &items[i]); err != nil {
			return nil, err
		}
	}

	result := &CandidateMatchPage{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages(total, size),
	}

	s.storePage(ctx, key, result)

	return result, nil
}

// redactIfRestricted consumes a quota slot for the applicant entry and, when
// the subscription does not cover it, strips the entry down to a restricted
// placeholder. The placeholder still occupies its slot in the page.
func (s *Service) redactIfRestricted(ctx context.Context, actor domain.Actor, job *domain.Job, entry *CandidateMatch) error {
	ok, err := s.access.CanAccessApplicationData(ctx, actor, job)
	if err != nil {
		return fmt.Errorf("check application access: %w", err)
	}
	if ok {
		return nil
	}

	msg, _, err := s.access.RestrictionMessage(ctx, actor, job)
	if err != nil {
		return fmt.Errorf("resolve restriction message: %w", err)
	}

	entry.Candidate = nil
	entry.Outcome = nil
	entry.ApplicationStatus = StatusRestricted
	entry.Restriction = msg

	return nil
}

func matchScore(m CandidateMatch) float64 {
	if m.Outcome == nil {
		return -1
	}
	return m.Outcome.ScorePercent
}

// scoreCandidates builds the entries of the recruiter view. Prospects are
// kept only when they pass the gate and the threshold; applicants are always
// kept, whatever their gate or score outcome, with the score attached when it
// could be computed.
func (s *Service) scoreCandidates(ctx context.Context, candidates []domain.Candidate, job *domain.Job, applied map[string]domain.Application) ([]CandidateMatch, error) {
	entries := make([]*CandidateMatch, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.conc)
	for i := range candidates {
		g.Go(func() error {
			app, isApplicant := applied[candidates[i].ID]

			outcome, err := s.engine.MatchProfile(gctx, &candidates[i], job)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("scoring pair failed",
					append(logger.PairFields(candidates[i].ID, job.ID), zap.Error(err))...)
				if !isApplicant {
					return nil
				}
				outcome = nil
			}

			if !isApplicant && (outcome == nil || !outcome.PassesGate || !outcome.MeetsThreshold) {
				return nil
			}

			entry := &CandidateMatch{
				Candidate: &candidates[i],
				Outcome:   outcome,
			}
			if isApplicant {
				entry.Applied = true
				entry.ApplicationStatus = app.Status
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]CandidateMatch, 0, len(candidates))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		matches = append(matches, *entry)
	}

	return matches, nil
}
