package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"netwatch/internal/domain/usage"
)

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockSessionRepository) InsertBatch(ctx context.Context, sessions []*usage.Session) error {
	args := m.Called(ctx, sessions)
	return args.Error(0)
}

func (m *mockSessionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepository) LatestStartTime(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *mockSessionRepository) HasUser(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepository) AggregateUser(ctx context.Context, username string, ref time.Time) (*usage.Breakdown, error) {
	args := m.Called(ctx, username, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usage.Breakdown), args.Error(1)
}

func (m *mockSessionRepository) AggregateUsers(ctx context.Context, usernames []string, ref time.Time) (map[string]*usage.Breakdown, error) {
	args := m.Called(ctx, usernames, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*usage.Breakdown), args.Error(1)
}

func (m *mockSessionRepository) CountActiveUsers(ctx context.Context, ref time.Time) (int64, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionRepository) RankUsersByMonthlyTotal(ctx context.Context, ref time.Time, offset, limit int) ([]usage.RankedTotal, error) {
	args := m.Called(ctx, ref, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usage.RankedTotal), args.Error(1)
}
