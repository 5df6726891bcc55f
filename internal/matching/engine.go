package matching

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hireloop/matchwise/internal/domain"
	"github.com/hireloop/matchwise/internal/logger"
	"github.com/hireloop/matchwise/internal/ports"
)

// DefaultThreshold is the minimum overall score for a usable match.
const DefaultThreshold = 70.0

// ReasonProfileIncomplete is the gate reason reported when the candidate
// profile cannot be loaded.
const ReasonProfileIncomplete = "profile incomplete"

// ReasonMatchingDisabled is the gate reason reported when the candidate
// opted out of matching.
const ReasonMatchingDisabled = "matching disabled for profile"

// Engine produces a MatchOutcome for a (candidate, job) pair: gate first,
// then the ordered strategy list with transparent fallback, then the
// threshold decision. It performs no caching, pagination or access control.
type Engine struct {
	profiles   ports.ProfileReader
	gate       *EligibilityGate
	strategies []Strategy
	threshold  float64
	logger     *zap.Logger
}

// NewEngine builds an engine. Strategies are tried in order; the last one
// should be the deterministic rule-based strategy so scoring always
// completes. A non-positive threshold selects DefaultThreshold.
func NewEngine(profiles ports.ProfileReader, gate *EligibilityGate, strategies []Strategy, threshold float64, log *zap.Logger) *Engine {
	if gate == nil {
		gate = NewEligibilityGate()
	}
	if len(strategies) == 0 {
		strategies = []Strategy{NewRuleBasedStrategy()}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		profiles:   profiles,
		gate:       gate,
		strategies: strategies,
		threshold:  threshold,
		logger:     log,
	}
}

// Threshold returns the configured minimum overall score.
func (e *Engine) Threshold() float64 { return e.threshold }

// Match looks up the candidate's profile and scores the pair. A missing
// profile is an expected condition reported as a gate failure, not an error.
func (e *Engine) Match(ctx context.Context, candidateID string, job *domain.Job) (*MatchOutcome, error) {
	profile, err := e.profiles.GetProfile(ctx, candidateID)
	if errors.Is(err, ports.ErrNotFound) {
		return &MatchOutcome{
			SubjectID:          candidateID,
			TargetID:           job.ID,
			PassesGate:         false,
			GateFailureReasons: []string{ReasonProfileIncomplete},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %q: %w", candidateID, err)
	}
	if !profile.MatchingEnabled {
		return &MatchOutcome{
			SubjectID:          candidateID,
			TargetID:           job.ID,
			PassesGate:         false,
			GateFailureReasons: []string{ReasonMatchingDisabled},
		}, nil
	}

	return e.MatchProfile(ctx, profile, job)
}

// MatchProfile scores an already-loaded profile against a job. Ineligible
// pairs are returned without invoking any scoring strategy.
func (e *Engine) MatchProfile(ctx context.Context, c *domain.Candidate, job *domain.Job) (*MatchOutcome, error) {
	outcome := &MatchOutcome{
		SubjectID: c.ID,
		TargetID:  job.ID,
	}

	passes, reasons := e.gate.Evaluate(c, job)
	if !passes {
		outcome.GateFailureReasons = reasons
		return outcome, nil
	}

	breakdown, err := e.score(ctx, NewComparisonRecord(c, job))
	if err != nil {
		return nil, err
	}

	outcome.PassesGate = true
	outcome.Breakdown = breakdown
	outcome.ScorePercent = breakdown.Overall
	outcome.MeetsThreshold = breakdown.Overall >= e.threshold
	return outcome, nil
}

// score tries each strategy in order and returns the first complete
// breakdown. Strategy failures are logged and recovered by falling back;
// caller cancellation aborts immediately.
func (e *Engine) score(ctx context.Context, rec *ComparisonRecord) (*ScoreBreakdown, error) {
	var lastErr error
	for _, strategy := range e.strategies {
		breakdown, err := strategy.Score(ctx, rec)
		if err == nil {
			return breakdown, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		e.logger.Warn("scoring strategy failed, falling back",
			append(logger.PairFields(rec.CandidateID, rec.JobID),
				zap.String(logger.FieldStrategy, strategy.Name()),
				zap.Error(err),
			)...,
		)
		lastErr = err
	}

	return nil, fmt.Errorf("all scoring strategies failed: %w", lastErr)
}
