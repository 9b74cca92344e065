// Package repository contains the GORM implementations of the domain
// store contracts.
package repository

import (
	"context"
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"netwatch/internal/domain/usage"
	"netwatch/internal/infrastructure/persistence/models"
	"netwatch/internal/shared/errors"
	"netwatch/internal/shared/logger"
)

// windowedAggregation is the select list of the single-pass breakdown
// query. The 30-day cutoff is already enforced by the WHERE clause, so
// the 30-day columns are plain sums; the 1-day and 7-day columns gate
// each row on its start_time instead of re-scanning the table.
const windowedAggregation = `
COALESCE(SUM(CASE WHEN start_time > ? THEN upload_kb ELSE 0 END), 0) AS upload_1d,
COALESCE(SUM(CASE WHEN start_time > ? THEN download_kb ELSE 0 END), 0) AS download_1d,
COALESCE(SUM(CASE WHEN start_time > ? THEN total_kb ELSE 0 END), 0) AS total_1d,
COALESCE(SUM(CASE WHEN start_time > ? THEN 1 ELSE 0 END), 0) AS sessions_1d,
COALESCE(SUM(CASE WHEN start_time > ? THEN upload_kb ELSE 0 END), 0) AS upload_7d,
COALESCE(SUM(CASE WHEN start_time > ? THEN download_kb ELSE 0 END), 0) AS download_7d,
COALESCE(SUM(CASE WHEN start_time > ? THEN total_kb ELSE 0 END), 0) AS total_7d,
COALESCE(SUM(CASE WHEN start_time > ? THEN 1 ELSE 0 END), 0) AS sessions_7d,
COALESCE(SUM(upload_kb), 0) AS upload_30d,
COALESCE(SUM(download_kb), 0) AS download_30d,
COALESCE(SUM(total_kb), 0) AS total_30d,
COUNT(*) AS sessions_30d`

// breakdownRow receives one grouped aggregation row.
type breakdownRow struct {
	Username    string  `gorm:"column:username"`
	Upload1D    float64 `gorm:"column:upload_1d"`
	Download1D  float64 `gorm:"column:download_1d"`
	Total1D     float64 `gorm:"column:total_1d"`
	Sessions1D  int64   `gorm:"column:sessions_1d"`
	Upload7D    float64 `gorm:"column:upload_7d"`
	Download7D  float64 `gorm:"column:download_7d"`
	Total7D     float64 `gorm:"column:total_7d"`
	Sessions7D  int64   `gorm:"column:sessions_7d"`
	Upload30D   float64 `gorm:"column:upload_30d"`
	Download30D float64 `gorm:"column:download_30d"`
	Total30D    float64 `gorm:"column:total_30d"`
	Sessions30D int64   `gorm:"column:sessions_30d"`
}

func (r breakdownRow) toBreakdown() *usage.Breakdown {
	return &usage.Breakdown{
		OneDay: usage.WindowSummary{
			UploadKB:   r.Upload1D,
			DownloadKB: r.Download1D,
			TotalKB:    r.Total1D,
			Sessions:   r.Sessions1D,
		},
		SevenDays: usage.WindowSummary{
			UploadKB:   r.Upload7D,
			DownloadKB: r.Download7D,
			TotalKB:    r.Total7D,
			Sessions:   r.Sessions7D,
		},
		ThirtyDays: usage.WindowSummary{
			UploadKB:   r.Upload30D,
			DownloadKB: r.Download30D,
			TotalKB:    r.Total30D,
			Sessions:   r.Sessions30D,
		},
	}
}

// SessionRepositoryImpl implements usage.SessionRepository with GORM.
type SessionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB, logger logger.Interface) usage.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *SessionRepositoryImpl) DeleteAll(ctx context.Context) error {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.UsageSessionModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete sessions", "error", result.Error)
		return errors.NewInternalError("failed to delete sessions", result.Error.Error())
	}

	r.logger.Debugw("deleted all sessions", "rows", result.RowsAffected)
	return nil
}

func (r *SessionRepositoryImpl) InsertBatch(ctx context.Context, sessions []*usage.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	rows := make([]models.UsageSessionModel, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, models.UsageSessionModel{
			Username:         s.Username(),
			MACAddress:       s.MACAddress(),
			StartTime:        s.StartTime(),
			UsageTimeSeconds: s.UsageTimeSeconds(),
			UploadKB:         s.UploadKB(),
			DownloadKB:       s.DownloadKB(),
			TotalKB:          s.TotalKB(),
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		r.logger.Errorw("failed to insert session batch",
			"batch_size", len(rows),
			"error", err)
		return errors.NewInternalError("failed to insert session batch", err.Error())
	}

	return nil
}

func (r *SessionRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UsageSessionModel{}).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count sessions", "error", err)
		return 0, errors.NewInternalError("failed to count sessions", err.Error())
	}
	return count, nil
}

func (r *SessionRepositoryImpl) LatestStartTime(ctx context.Context) (time.Time, error) {
	var row models.UsageSessionModel
	err := r.db.WithContext(ctx).
		Select("start_time").
		Order("start_time DESC").
		Take(&row).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, errors.NewEmptyStoreError("no usage data available")
	}
	if err != nil {
		r.logger.Errorw("failed to query latest start time", "error", err)
		return time.Time{}, errors.NewInternalError("failed to query latest start time", err.Error())
	}

	return row.StartTime, nil
}

func (r *SessionRepositoryImpl) HasUser(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UsageSessionModel{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check user existence",
			"username", username,
			"error", err)
		return false, errors.NewInternalError("failed to check user existence", err.Error())
	}
	return count > 0, nil
}

func (r *SessionRepositoryImpl) AggregateUser(ctx context.Context, username string, ref time.Time) (*usage.Breakdown, error) {
	d1 := usage.Window1Day.CutoffBefore(ref)
	d7 := usage.Window7Days.CutoffBefore(ref)
	d30 := usage.Window30Days.CutoffBefore(ref)

	var row breakdownRow
	result := r.db.WithContext(ctx).
		Model(&models.UsageSessionModel{}).
		Select("username, "+windowedAggregation,
			d1, d1, d1, d1, d7, d7, d7, d7).
		Where("username = ? AND start_time > ? AND start_time <= ?", username, d30, ref).
		Group("username").
		Scan(&row)
	if result.Error != nil {
		r.logger.Errorw("failed to aggregate user usage",
			"username", username,
			"error", result.Error)
		return nil, errors.NewInternalError("failed to aggregate user usage", result.Error.Error())
	}

	// No in-window rows grouped into nothing; that is a valid all-zero
	// breakdown for an existing user.
	if result.RowsAffected == 0 {
		return &usage.Breakdown{}, nil
	}

	return row.toBreakdown(), nil
}

func (r *SessionRepositoryImpl) AggregateUsers(ctx context.Context, usernames []string, ref time.Time) (map[string]*usage.Breakdown, error) {
	breakdowns := make(map[string]*usage.Breakdown, len(usernames))
	if len(usernames) == 0 {
		return breakdowns, nil
	}

	d1 := usage.Window1Day.CutoffBefore(ref)
	d7 := usage.Window7Days.CutoffBefore(ref)
	d30 := usage.Window30Days.CutoffBefore(ref)

	var rows []breakdownRow
	if err := r.db.WithContext(ctx).
		Model(&models.UsageSessionModel{}).
		Select("username, "+windowedAggregation,
			d1, d1, d1, d1, d7, d7, d7, d7).
		Where("username IN ? AND start_time > ? AND start_time <= ?", usernames, d30, ref).
		Group("username").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to aggregate usage for users",
			"users_count", len(usernames),
			"error", err)
		return nil, errors.NewInternalError("failed to aggregate usage for users", err.Error())
	}

	for _, row := range rows {
		breakdowns[row.Username] = row.toBreakdown()
	}
	return breakdowns, nil
}

func (r *SessionRepositoryImpl) CountActiveUsers(ctx context.Context, ref time.Time) (int64, error) {
	d30 := usage.Window30Days.CutoffBefore(ref)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UsageSessionModel{}).
		Where("start_time > ? AND start_time <= ?", d30, ref).
		Distinct("username").
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count active users", "error", err)
		return 0, errors.NewInternalError("failed to count active users", err.Error())
	}
	return count, nil
}

func (r *SessionRepositoryImpl) RankUsersByMonthlyTotal(ctx context.Context, ref time.Time, offset, limit int) ([]usage.RankedTotal, error) {
	d30 := usage.Window30Days.CutoffBefore(ref)

	type rankedRow struct {
		Username string  `gorm:"column:username"`
		Total30D float64 `gorm:"column:total_30d"`
	}

	var rows []rankedRow
	if err := r.db.WithContext(ctx).
		Model(&models.UsageSessionModel{}).
		Select("username, COALESCE(SUM(total_kb), 0) AS total_30d").
		Where("start_time > ? AND start_time <= ?", d30, ref).
		Group("username").
		Order("total_30d DESC, username ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to rank users",
			"offset", offset,
			"limit", limit,
			"error", err)
		return nil, errors.NewInternalError("failed to rank users", err.Error())
	}

	ranked := make([]usage.RankedTotal, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, usage.RankedTotal{
			Username: row.Username,
			TotalKB:  row.Total30D,
		})
	}
	return ranked, nil
}
