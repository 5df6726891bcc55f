// Package ports declares the narrow interfaces through which the matching
// engine consumes the rest of the platform. Implementations live in the
// adapters; tests substitute in-memory stubs.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/hireloop/matchwise/internal/domain"
)

// ErrNotFound is returned by readers when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrQuotaExceeded is returned by SubscriptionStore.IncrementUsage when the
// actor has no remaining restricted-access quota.
var ErrQuotaExceeded = errors.New("application quota exceeded")

// ProfileReader fetches candidate profiles by id.
type ProfileReader interface {
	GetProfile(ctx context.Context, id string) (*domain.Candidate, error)
}

// JobReader fetches job postings.
type JobReader interface {
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	ListActiveMatchableJobs(ctx context.Context) ([]domain.Job, error)
}

// CandidateReader lists candidate profiles that opted into matching.
type CandidateReader interface {
	ListMatchableCandidates(ctx context.Context) ([]domain.Candidate, error)
}

// ApplicationReader fetches applications.
type ApplicationReader interface {
	FindApplication(ctx context.Context, candidateID, jobID string) (*domain.Application, error)
	ListForJob(ctx context.Context, jobID string) ([]domain.Application, error)
}

// SubscriptionStore reads subscription state and consumes quota.
//
// IncrementUsage must be atomic with respect to concurrent calls for the same
// actor: it increments the usage counter only while it is below the plan
// limit and returns ErrQuotaExceeded otherwise, so two concurrent calls at
// one remaining slot yield exactly one success.
type SubscriptionStore interface {
	GetActiveSubscription(ctx context.Context, actorID string) (*domain.Subscription, error)
	IncrementUsage(ctx context.Context, actorID string) error
}

// PageCache memoizes serialized discovery pages for a bounded TTL.
type PageCache interface {
	// Get returns the cached payload and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
