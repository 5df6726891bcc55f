package matching

import (
	"context"
	"errors"
)

// ErrStrategyUnavailable marks a strategy that could not run at all: missing
// backend, misconfiguration, timeout. Recovered by falling back to the next
// strategy; never surfaced to callers.
var ErrStrategyUnavailable = errors.New("scoring strategy unavailable")

// ErrStrategyError marks a strategy that ran but produced unusable output,
// such as an unparseable response. Recovered the same way.
var ErrStrategyError = errors.New("scoring strategy failed")

// Strategy scores a normalized comparison record along the five match
// dimensions. Implementations must be safe for concurrent use.
//
// There are exactly two implementations: RemoteStrategy (model-backed,
// advisory, non-deterministic between calls) and RuleBasedStrategy
// (deterministic, never fails). The engine holds an ordered list of
// strategies and falls back on any error.
type Strategy interface {
	Name() string
	Score(ctx context.Context, rec *ComparisonRecord) (*ScoreBreakdown, error)
}

// Backend is the single capability the remote strategy needs from an external
// scoring model: turn a prompt into raw text. Implementations carry their own
// timeout so no call blocks indefinitely.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
