package usage

import (
	"context"
	"time"
)

// SessionRepository is the usage store contract. Writes happen only during
// ingestion; every query method is a read against the current contents.
type SessionRepository interface {
	// DeleteAll removes every stored session. Used before fresh ingestion
	// unless the caller opts to append.
	DeleteAll(ctx context.Context) error

	// InsertBatch persists one batch of validated sessions atomically:
	// either the whole batch commits or none of it does.
	InsertBatch(ctx context.Context, sessions []*Session) error

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int64, error)

	// LatestStartTime returns the maximum start_time across all sessions.
	// Returns an empty-store error when no sessions exist.
	LatestStartTime(ctx context.Context) (time.Time, error)

	// HasUser reports whether at least one session exists for the exact
	// (case-sensitive) username, regardless of any time window.
	HasUser(ctx context.Context, username string) (bool, error)

	// AggregateUser computes the 1/7/30-day breakdown for one user from a
	// single scan of that user's rows in the 30-day window ending at ref.
	// A user with no in-window rows yields an all-zero breakdown.
	AggregateUser(ctx context.Context, username string, ref time.Time) (*Breakdown, error)

	// AggregateUsers computes breakdowns for several users in one grouped
	// scan, keyed by username. Users without in-window rows are absent.
	AggregateUsers(ctx context.Context, usernames []string, ref time.Time) (map[string]*Breakdown, error)

	// CountActiveUsers returns the number of distinct usernames with at
	// least one session in the 30-day window ending at ref.
	CountActiveUsers(ctx context.Context, ref time.Time) (int64, error)

	// RankUsersByMonthlyTotal returns the requested slice of usernames
	// ordered by 30-day total volume descending, ties broken by username
	// ascending so pagination stays reproducible.
	RankUsersByMonthlyTotal(ctx context.Context, ref time.Time, offset, limit int) ([]RankedTotal, error)
}
