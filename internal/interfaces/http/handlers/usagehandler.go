// Package handlers contains the Gin HTTP handlers for the usage
// analytics API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netwatch/internal/application/usage/dto"
	"netwatch/internal/application/usage/usecases"
	"netwatch/internal/shared/errors"
	"netwatch/internal/shared/logger"
	"netwatch/internal/shared/utils"
)

// UsageHandler serves the leaderboard and per-user breakdown queries.
type UsageHandler struct {
	getTopUsers    usecases.GetTopUsersExecutor
	getUserDetails usecases.GetUserDetailsExecutor
	logger         logger.Interface
}

func NewUsageHandler(
	getTopUsers usecases.GetTopUsersExecutor,
	getUserDetails usecases.GetUserDetailsExecutor,
	logger logger.Interface,
) *UsageHandler {
	return &UsageHandler{
		getTopUsers:    getTopUsers,
		getUserDetails: getUserDetails,
		logger:         logger,
	}
}

// GetTopUsers handles GET /api/v1/users/top. Omitted pagination values
// take their defaults; reference_date is optional and falls back to the
// newest stored session.
func (h *UsageHandler) GetTopUsers(c *gin.Context) {
	var req dto.TopUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ValidatePagination(req.Page, req.PerPage)
	query := usecases.GetTopUsersQuery{
		Page:    pagination.Page,
		PerPage: pagination.PerPage,
	}

	if req.ReferenceDate != "" {
		ref, err := utils.ParseTimestamp(req.ReferenceDate)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid reference_date", err.Error()))
			return
		}
		query.Timestamp = &ref
	}

	resp, err := h.getTopUsers.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUserDetails handles GET /api/v1/users/details. Both username and
// timestamp are required.
func (h *UsageHandler) GetUserDetails(c *gin.Context) {
	var req dto.UserDetailsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ref, err := utils.ParseTimestamp(req.Timestamp)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid timestamp", err.Error()))
		return
	}

	resp, err := h.getUserDetails.Execute(c.Request.Context(), usecases.GetUserDetailsQuery{
		Username:  req.Username,
		Timestamp: &ref,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
