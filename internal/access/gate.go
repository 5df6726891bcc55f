// Package access enforces subscription-based authorization for restricted
// jobs and application data, consuming quota on successful grants.
package access

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hireloop/matchwise/internal/domain"
	"github.com/hireloop/matchwise/internal/ports"
)

// Restriction messages shown to users when access would be denied.
const (
	MsgNoSubscription = "an active subscription is required to access this listing"
	MsgQuotaExhausted = "your plan's application limit has been reached"
)

// Gate decides whether an actor may see restricted data. A grant against a
// restricted resource consumes one unit of the actor's quota; the
// check-and-consume is a single atomic operation performed by the
// subscription store, so concurrent grants never overrun the limit. Denials
// are side-effect free.
type Gate struct {
	subs   ports.SubscriptionStore
	logger *zap.Logger
}

func NewGate(subs ports.SubscriptionStore, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{subs: subs, logger: log}
}

// CanAccessJob reports whether the actor may view the job listing.
// Job seekers may always view listings; recruiters see their own
// organization's jobs and any non-restricted job for free. A foreign
// restricted job requires an active subscription with remaining quota and
// consumes one unit on grant.
func (g *Gate) CanAccessJob(ctx context.Context, actor domain.Actor, job *domain.Job) (bool, error) {
	if actor.Role == domain.RoleCandidate {
		return true, nil
	}
	if g.owns(actor, job) || !job.Restricted {
		return true, nil
	}
	return g.grant(ctx, actor)
}

// CanAccessApplicationData reports whether the actor may view the full
// application data for the given job. Candidates always see their own
// applications; the owning organization's applications and applications to
// non-restricted jobs are free. A foreign restricted job's application data
// requires a grant, consuming quota atomically on success.
func (g *Gate) CanAccessApplicationData(ctx context.Context, actor domain.Actor, job *domain.Job) (bool, error) {
	if actor.Role == domain.RoleCandidate || g.owns(actor, job) || !job.Restricted {
		return true, nil
	}
	return g.grant(ctx, actor)
}

// RestrictionMessage explains why access to the restricted data would be
// denied, for user-facing messaging. It is a pure query: no quota is
// consumed. The second return value is false when access would be allowed.
func (g *Gate) RestrictionMessage(ctx context.Context, actor domain.Actor, job *domain.Job) (string, bool, error) {
	if actor.Role == domain.RoleCandidate || g.owns(actor, job) || !job.Restricted {
		return "", false, nil
	}

	sub, err := g.subs.GetActiveSubscription(ctx, actor.ID)
	if errors.Is(err, ports.ErrNotFound) {
		return MsgNoSubscription, true, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get subscription for %q: %w", actor.ID, err)
	}

	if !sub.Active {
		return MsgNoSubscription, true, nil
	}
	if sub.Remaining() == 0 {
		return MsgQuotaExhausted, true, nil
	}
	return "", false, nil
}

func (g *Gate) owns(actor domain.Actor, job *domain.Job) bool {
	if actor.Role != domain.RoleRecruiter {
		return false
	}
	if job.RecruiterID != "" && job.RecruiterID == actor.ID {
		return true
	}
	return job.OrganizationID != "" && job.OrganizationID == actor.OrganizationID
}

// grant performs the atomic check-and-consume. The subscription store's
// IncrementUsage is the only mutation; a quota-exceeded outcome is an
// expected denial, not an error.
func (g *Gate) grant(ctx context.Context, actor domain.Actor) (bool, error) {
	sub, err := g.subs.GetActiveSubscription(ctx, actor.ID)
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get subscription for %q: %w", actor.ID, err)
	}
	if !sub.Active {
		return false, nil
	}

	err = g.subs.IncrementUsage(ctx, actor.ID)
	if errors.Is(err, ports.ErrQuotaExceeded) || errors.Is(err, ports.ErrNotFound) {
		g.logger.Debug("restricted access denied by quota", zap.String("actor_id", actor.ID))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("increment usage for %q: %w", actor.ID, err)
	}

	return true, nil
}
