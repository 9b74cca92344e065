package usecases

import (
	"context"
	"fmt"
	"time"

	"netwatch/internal/application/usage/dto"
	"netwatch/internal/domain/usage"
	"netwatch/internal/shared/errors"
	"netwatch/internal/shared/logger"
	"netwatch/internal/shared/utils"
)

// GetUserDetailsQuery identifies one user and the reference timestamp
// the windows end at. A nil Timestamp means "as of the latest stored
// session".
type GetUserDetailsQuery struct {
	Username  string
	Timestamp *time.Time
}

type GetUserDetailsExecutor interface {
	Execute(ctx context.Context, q GetUserDetailsQuery) (*dto.UserDetailsResponse, error)
}

type GetUserDetailsUseCase struct {
	sessionRepo usage.SessionRepository
	logger      logger.Interface
}

func NewGetUserDetailsUseCase(
	sessionRepo usage.SessionRepository,
	logger logger.Interface,
) *GetUserDetailsUseCase {
	return &GetUserDetailsUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *GetUserDetailsUseCase) Execute(ctx context.Context, q GetUserDetailsQuery) (*dto.UserDetailsResponse, error) {
	uc.logger.Debugw("executing get user details use case", "username", q.Username)

	// Unknown user is a not-found error; a known user with no rows in
	// the window is a valid all-zero breakdown. The distinction needs an
	// existence check independent of any window. An empty store has no
	// users at all, so it surfaces as not found too.
	exists, err := uc.sessionRepo.HasUser(ctx, q.Username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user '%s' not found", q.Username))
	}

	var ref time.Time
	if q.Timestamp != nil {
		ref = *q.Timestamp
	} else {
		ref, err = uc.sessionRepo.LatestStartTime(ctx)
		if err != nil {
			return nil, err
		}
	}

	breakdown, err := uc.sessionRepo.AggregateUser(ctx, q.Username, ref)
	if err != nil {
		return nil, err
	}

	return &dto.UserDetailsResponse{
		Username:   q.Username,
		Timestamp:  utils.FormatTimestamp(ref),
		Usage1Day:  dto.ToUsagePeriodDTO(breakdown.OneDay),
		Usage7Day:  dto.ToUsagePeriodDTO(breakdown.SevenDays),
		Usage30Day: dto.ToUsagePeriodDTO(breakdown.ThirtyDays),
	}, nil
}
