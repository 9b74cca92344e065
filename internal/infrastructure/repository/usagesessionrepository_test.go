package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"netwatch/internal/domain/usage"
	"netwatch/internal/infrastructure/persistence/models"
	"netwatch/internal/shared/errors"
	"netwatch/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.UsageSessionModel{})
	require.NoError(t, err)

	return db
}

func mustSession(t *testing.T, username string, start time.Time, uploadKB, downloadKB float64) *usage.Session {
	s, err := usage.NewSession(username, "AA:BB:CC:DD:EE:FF", start, 3600, uploadKB, downloadKB)
	require.NoError(t, err)
	return s
}

func TestSessionRepository_InsertAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())
	ctx := context.Background()

	start := time.Date(2022, 12, 15, 10, 0, 0, 0, time.UTC)
	err := repo.InsertBatch(ctx, []*usage.Session{
		mustSession(t, "alice", start, 100, 200),
		mustSession(t, "bob", start, 50, 50),
	})
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	err = repo.DeleteAll(ctx)
	require.NoError(t, err)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSessionRepository_InsertBatchEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())

	err := repo.InsertBatch(context.Background(), nil)
	assert.NoError(t, err)
}

func TestSessionRepository_LatestStartTime(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())
	ctx := context.Background()

	_, err := repo.LatestStartTime(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsEmptyStoreError(err))

	older := time.Date(2022, 12, 10, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2022, 12, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertBatch(ctx, []*usage.Session{
		mustSession(t, "alice", older, 1, 1),
		mustSession(t, "alice", newer, 1, 1),
	}))

	latest, err := repo.LatestStartTime(ctx)
	require.NoError(t, err)
	assert.True(t, latest.Equal(newer), "latest = %v, want %v", latest, newer)
}

func TestSessionRepository_HasUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())
	ctx := context.Background()

	start := time.Date(2022, 12, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertBatch(ctx, []*usage.Session{
		mustSession(t, "alice", start, 1, 1),
	}))

	exists, err := repo.HasUser(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	// Exact byte match, not case-insensitive.
	exists, err = repo.HasUser(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.HasUser(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSessionRepository_AggregateUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, repo.InsertBatch(ctx, []*usage.Session{
		mustSession(t, "alice", time.Date(2022, 12, 15, 10, 0, 0, 0, time.UTC), 100, 200),
		mustSession(t, "alice", time.Date(2022, 12, 10, 10, 0, 0, 0, time.UTC), 50, 50),
		mustSession(t, "alice", time.Date(2022, 11, 1, 10, 0, 0, 0, time.UTC), 10, 10),
		mustSession(t, "bob", time.Date(2022, 12, 15, 11, 0, 0, 0, time.UTC), 999, 999),
	}))

	ref := time.Date(2022, 12, 15, 23, 59, 59, 0, time.UTC)
	b, err := repo.AggregateUser(ctx, "alice", ref)
	require.NoError(t, err)

	assert.Equal(t, usage.WindowSummary{UploadKB: 100, DownloadKB: 200, TotalKB: 300, Sessions: 1}, b.OneDay)
	assert.Equal(t, usage.WindowSummary{UploadKB: 150, DownloadKB: 250, TotalKB: 400, Sessions: 2}, b.SevenDays)
	// The Nov 1 row is 44 days before the reference, outside the 30-day
	// window, so the 30-day summary equals the 7-day one.
	assert.Equal(t, b.SevenDays, b.ThirtyDays)
}

func TestSessionRepository_AggregateUserWindowBounds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())
	ctx := context.Background()

	ref := time.Date(2022, 12, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertBatch(ctx, []*usage.Session{
		// Exactly at the reference: included.
		mustSession(t, "alice", ref, 1, 0),
		// Exactly at the 1-day lower bound: excluded from the 1-day
		// window (half-open), still inside 7 and 30 days.
		mustSession(t, "alice", ref.AddDate(0, 0, -1), 2, 0),
		// After the reference: excluded everywhere.
		mustSession(t, "alice", ref.Add(time.Second), 4, 0),
		// Exactly at the 30-day lower bound: excluded entirely.
		mustSession(t, "alice", ref.AddDate(0, 0, -30), 8, 0),
	}))

	b, err := repo.AggregateUser(ctx, "alice", ref)
	require.NoError(t, err)

	assert.Equal(t, 1.0, b.OneDay.UploadKB)
	assert.Equal(t, int64(1), b.OneDay.Sessions)
	assert.Equal(t, 3.0, b.SevenDays.UploadKB)
	assert.Equal(t, int64(2), b.SevenDays.Sessions)
	assert.Equal(t, 3.0, b.ThirtyDays.UploadKB)
	assert.Equal(t, int64(2), b.ThirtyDays.Sessions)
}

func TestSessionRepository_AggregateUserNoRowsInWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, repo.InsertBatch(ctx, []*usage.Session{
		mustSession(t, "alice", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), 100, 100),
	}))

	ref := time.Date(2022, 12, 15, 0, 0, 0, 0, time.UTC)
	b, err := repo.AggregateUser(ctx, "alice", ref)
	require.NoError(t, err)

	assert.Equal(t, usage.Breakdown{}, *b)
}

func TestSessionRepository_AggregateUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())
	ctx := context.Background()

	ref := time.Date(2022, 12, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertBatch(ctx, []*usage.Session{
		mustSession(t, "alice", ref.Add(-time.Hour), 10, 10),
		mustSession(t, "bob", ref.AddDate(0, 0, -5), 20, 20),
		mustSession(t, "carol", ref.AddDate(0, 0, -40), 30, 30),
	}))

	breakdowns, err := repo.AggregateUsers(ctx, []string{"alice", "bob", "carol"}, ref)
	require.NoError(t, err)

	require.Contains(t, breakdowns, "alice")
	require.Contains(t, breakdowns, "bob")
	// carol has no rows inside the 30-day window, so she is absent.
	assert.NotContains(t, breakdowns, "carol")

	assert.Equal(t, 20.0, breakdowns["alice"].OneDay.TotalKB)
	assert.Equal(t, 0.0, breakdowns["bob"].OneDay.TotalKB)
	assert.Equal(t, 40.0, breakdowns["bob"].SevenDays.TotalKB)

	empty, err := repo.AggregateUsers(ctx, nil, ref)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSessionRepository_CountActiveUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())
	ctx := context.Background()

	ref := time.Date(2022, 12, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertBatch(ctx, []*usage.Session{
		mustSession(t, "alice", ref.Add(-time.Hour), 1, 1),
		mustSession(t, "alice", ref.Add(-2*time.Hour), 1, 1),
		mustSession(t, "bob", ref.AddDate(0, 0, -10), 1, 1),
		mustSession(t, "carol", ref.AddDate(0, 0, -40), 1, 1),
	}))

	count, err := repo.CountActiveUsers(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSessionRepository_RankUsersByMonthlyTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db, logger.NewLogger())
	ctx := context.Background()

	ref := time.Date(2022, 12, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertBatch(ctx, []*usage.Session{
		mustSession(t, "bob", ref.Add(-time.Hour), 100, 100),
		mustSession(t, "alice", ref.Add(-time.Hour), 300, 300),
		mustSession(t, "alice", ref.AddDate(0, 0, -2), 100, 100),
		// dave and carol tie on total volume; username ascending breaks it.
		mustSession(t, "dave", ref.Add(-time.Hour), 50, 50),
		mustSession(t, "carol", ref.Add(-time.Hour), 50, 50),
		// Outside the window, must not affect ranking.
		mustSession(t, "bob", ref.AddDate(0, 0, -35), 9999, 9999),
	}))

	ranked, err := repo.RankUsersByMonthlyTotal(ctx, ref, 0, 10)
	require.NoError(t, err)

	require.Len(t, ranked, 4)
	assert.Equal(t, "alice", ranked[0].Username)
	assert.Equal(t, 800.0, ranked[0].TotalKB)
	assert.Equal(t, "bob", ranked[1].Username)
	assert.Equal(t, 200.0, ranked[1].TotalKB)
	assert.Equal(t, "carol", ranked[2].Username)
	assert.Equal(t, "dave", ranked[3].Username)

	// Pagination slices the same deterministic order.
	page2, err := repo.RankUsersByMonthlyTotal(ctx, ref, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "carol", page2[0].Username)
	assert.Equal(t, "dave", page2[1].Username)

	beyond, err := repo.RankUsersByMonthlyTotal(ctx, ref, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}
