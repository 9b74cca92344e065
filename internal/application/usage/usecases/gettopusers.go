// Package usecases contains the application services for the usage
// analytics queries.
package usecases

import (
	"context"
	"time"

	"netwatch/internal/application/usage/dto"
	"netwatch/internal/domain/usage"
	"netwatch/internal/shared/logger"
	"netwatch/internal/shared/utils"
)

// GetTopUsersQuery carries validated pagination plus an optional
// reference timestamp. A nil Timestamp means "as of the latest stored
// session".
type GetTopUsersQuery struct {
	Page      int
	PerPage   int
	Timestamp *time.Time
}

type GetTopUsersExecutor interface {
	Execute(ctx context.Context, q GetTopUsersQuery) (*dto.TopUsersResponse, error)
}

type GetTopUsersUseCase struct {
	sessionRepo usage.SessionRepository
	logger      logger.Interface
}

func NewGetTopUsersUseCase(
	sessionRepo usage.SessionRepository,
	logger logger.Interface,
) *GetTopUsersUseCase {
	return &GetTopUsersUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute ranks users by their 30-day total volume and resolves the full
// window breakdown only for the requested page slice. Ranking and
// detail resolution are two passes over indexed rows, never a per-user
// query loop.
func (uc *GetTopUsersUseCase) Execute(ctx context.Context, q GetTopUsersQuery) (*dto.TopUsersResponse, error) {
	uc.logger.Debugw("executing get top users use case",
		"page", q.Page,
		"per_page", q.PerPage)

	// The latest start time doubles as the empty-store probe: with zero
	// rows there is no leaderboard to serve regardless of any explicit
	// reference timestamp.
	latest, err := uc.sessionRepo.LatestStartTime(ctx)
	if err != nil {
		return nil, err
	}

	ref := latest
	if q.Timestamp != nil {
		ref = *q.Timestamp
	}

	totalUsers, err := uc.sessionRepo.CountActiveUsers(ctx, ref)
	if err != nil {
		return nil, err
	}

	pagination := utils.ValidatePagination(q.Page, q.PerPage)
	offset := pagination.Offset()

	ranked, err := uc.sessionRepo.RankUsersByMonthlyTotal(ctx, ref, offset, pagination.PerPage)
	if err != nil {
		return nil, err
	}

	usernames := make([]string, 0, len(ranked))
	for _, r := range ranked {
		usernames = append(usernames, r.Username)
	}

	breakdowns, err := uc.sessionRepo.AggregateUsers(ctx, usernames, ref)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.TopUserEntryDTO, 0, len(ranked))
	for i, r := range ranked {
		breakdown := breakdowns[r.Username]
		if breakdown == nil {
			breakdown = &usage.Breakdown{}
		}
		entries = append(entries, dto.TopUserEntryDTO{
			Rank:       offset + i + 1,
			Username:   r.Username,
			Usage1Day:  dto.ToUsagePeriodDTO(breakdown.OneDay),
			Usage7Day:  dto.ToUsagePeriodDTO(breakdown.SevenDays),
			Usage30Day: dto.ToUsagePeriodDTO(breakdown.ThirtyDays),
		})
	}

	return &dto.TopUsersResponse{
		Page:          pagination.Page,
		PerPage:       pagination.PerPage,
		TotalUsers:    totalUsers,
		TotalPages:    utils.TotalPages(totalUsers, pagination.PerPage),
		ReferenceDate: utils.FormatTimestamp(ref),
		Data:          entries,
	}, nil
}
