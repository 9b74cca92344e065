// Package dto defines the wire shapes of the usage analytics API.
package dto

import (
	"math"

	"netwatch/internal/domain/usage"
)

// TopUsersRequest carries the leaderboard query parameters. Omitted
// pagination values fall back to their defaults after validation.
type TopUsersRequest struct {
	Page          int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PerPage       int    `form:"per_page" json:"per_page" validate:"omitempty,min=1,max=100"`
	ReferenceDate string `form:"reference_date" json:"reference_date"`
}

// UserDetailsRequest carries the single-user query parameters.
type UserDetailsRequest struct {
	Username  string `form:"username" json:"username" validate:"required"`
	Timestamp string `form:"timestamp" json:"timestamp" validate:"required"`
}

// UsagePeriodDTO is the per-window volume detail attached to each user.
type UsagePeriodDTO struct {
	UploadKB   float64 `json:"upload_kb"`
	DownloadKB float64 `json:"download_kb"`
	TotalKB    float64 `json:"total_kb"`
	Sessions   int64   `json:"sessions"`
}

// TopUserEntryDTO is one leaderboard row. Rank is absolute across the
// full ordering, not per page.
type TopUserEntryDTO struct {
	Rank       int            `json:"rank"`
	Username   string         `json:"username"`
	Usage1Day  UsagePeriodDTO `json:"usage_1_day"`
	Usage7Day  UsagePeriodDTO `json:"usage_7_days"`
	Usage30Day UsagePeriodDTO `json:"usage_30_days"`
}

// TopUsersResponse is the paginated leaderboard payload.
type TopUsersResponse struct {
	Page          int               `json:"page"`
	PerPage       int               `json:"per_page"`
	TotalUsers    int64             `json:"total_users"`
	TotalPages    int               `json:"total_pages"`
	ReferenceDate string            `json:"reference_date"`
	Data          []TopUserEntryDTO `json:"data"`
}

// UserDetailsResponse is the single-user breakdown payload.
type UserDetailsResponse struct {
	Username   string         `json:"username"`
	Timestamp  string         `json:"timestamp"`
	Usage1Day  UsagePeriodDTO `json:"usage_1_day"`
	Usage7Day  UsagePeriodDTO `json:"usage_7_days"`
	Usage30Day UsagePeriodDTO `json:"usage_30_days"`
}

// Round2 rounds a volume to two decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ToUsagePeriodDTO converts a window summary into its wire shape.
func ToUsagePeriodDTO(s usage.WindowSummary) UsagePeriodDTO {
	return UsagePeriodDTO{
		UploadKB:   Round2(s.UploadKB),
		DownloadKB: Round2(s.DownloadKB),
		TotalKB:    Round2(s.TotalKB),
		Sessions:   s.Sessions,
	}
}
