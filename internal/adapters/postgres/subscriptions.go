package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hireloop/matchwise/internal/domain"
	"github.com/hireloop/matchwise/internal/ports"
)

// GetActiveSubscription implements ports.SubscriptionStore.
func (s *Store) GetActiveSubscription(ctx context.Context, actorID string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := s.pool.QueryRow(ctx, `
		SELECT is_active, plan, applications_used, application_limit
		FROM subscriptions
		WHERE user_id = $1 AND is_active
	`, actorID).Scan(&sub.Active, &sub.Plan, &sub.ApplicationsUsed, &sub.ApplicationLimit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query subscription: %w", err)
	}
	return &sub, nil
}

// IncrementUsage implements ports.SubscriptionStore. The check and the
// increment are one statement, so the database serializes concurrent grants
// and the counter can never pass the limit. A negative limit is unlimited.
func (s *Store) IncrementUsage(ctx context.Context, actorID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE subscriptions
		SET applications_used = applications_used + 1
		WHERE user_id = $1 AND is_active
		  AND (application_limit < 0 OR applications_used < application_limit)
	`, actorID)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// No row moved: either there is no active subscription or the ceiling
	// was hit. Disambiguate for the caller.
	if _, err := s.GetActiveSubscription(ctx, actorID); errors.Is(err, ports.ErrNotFound) {
		return ports.ErrNotFound
	} else if err != nil {
		return err
	}
	return ports.ErrQuotaExceeded
}
