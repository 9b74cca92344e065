package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ingestionDTO "netwatch/internal/application/ingestion/dto"
	ingestionUC "netwatch/internal/application/ingestion/usecases"
	usageDTO "netwatch/internal/application/usage/dto"
	usageUC "netwatch/internal/application/usage/usecases"
	"netwatch/internal/shared/errors"
	"netwatch/internal/shared/logger"
	"netwatch/internal/shared/utils"
)

type mockGetTopUsers struct {
	mock.Mock
}

func (m *mockGetTopUsers) Execute(ctx context.Context, q usageUC.GetTopUsersQuery) (*usageDTO.TopUsersResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usageDTO.TopUsersResponse), args.Error(1)
}

type mockGetUserDetails struct {
	mock.Mock
}

func (m *mockGetUserDetails) Execute(ctx context.Context, q usageUC.GetUserDetailsQuery) (*usageDTO.UserDetailsResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usageDTO.UserDetailsResponse), args.Error(1)
}

type mockIngestCSV struct {
	mock.Mock
}

func (m *mockIngestCSV) Execute(ctx context.Context, cmd ingestionUC.IngestCSVCommand) (*ingestionDTO.IngestResultDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestionDTO.IngestResultDTO), args.Error(1)
}

func setupUsageRouter(topUsers *mockGetTopUsers, details *mockGetUserDetails) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewUsageHandler(topUsers, details, logger.NewLogger())
	engine.GET("/api/v1/users/top", handler.GetTopUsers)
	engine.GET("/api/v1/users/details", handler.GetUserDetails)
	return engine
}

func decodeErrorBody(t *testing.T, body []byte) utils.ErrorBody {
	var eb utils.ErrorBody
	require.NoError(t, json.Unmarshal(body, &eb))
	return eb
}

func TestGetTopUsersHandler_Success(t *testing.T) {
	topUsers := new(mockGetTopUsers)
	topUsers.On("Execute", mock.Anything, usageUC.GetTopUsersQuery{Page: 2, PerPage: 5}).
		Return(&usageDTO.TopUsersResponse{
			Page:          2,
			PerPage:       5,
			TotalUsers:    25,
			TotalPages:    5,
			ReferenceDate: "2022-12-15T23:59:59",
			Data: []usageDTO.TopUserEntryDTO{
				{Rank: 6, Username: "alice", Usage30Day: usageDTO.UsagePeriodDTO{TotalKB: 500, Sessions: 3}},
			},
		}, nil)

	engine := setupUsageRouter(topUsers, new(mockGetUserDetails))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/top?page=2&per_page=5", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp usageDTO.TopUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, int64(25), resp.TotalUsers)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 6, resp.Data[0].Rank)
	assert.Equal(t, "alice", resp.Data[0].Username)

	topUsers.AssertExpectations(t)
}

func TestGetTopUsersHandler_InvalidReferenceDate(t *testing.T) {
	engine := setupUsageRouter(new(mockGetTopUsers), new(mockGetUserDetails))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/top?reference_date=not-a-date", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	eb := decodeErrorBody(t, w.Body.Bytes())
	assert.Equal(t, "validation_error", eb.Error.Type)
}

func TestGetTopUsersHandler_InvalidPagination(t *testing.T) {
	engine := setupUsageRouter(new(mockGetTopUsers), new(mockGetUserDetails))

	tests := []struct {
		name string
		url  string
	}{
		{"negative page", "/api/v1/users/top?page=-1"},
		{"non-numeric page", "/api/v1/users/top?page=abc"},
		{"per_page above cap", "/api/v1/users/top?per_page=500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			engine.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			eb := decodeErrorBody(t, w.Body.Bytes())
			assert.Equal(t, "validation_error", eb.Error.Type)
		})
	}
}

func TestGetTopUsersHandler_EmptyStore(t *testing.T) {
	topUsers := new(mockGetTopUsers)
	topUsers.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.NewEmptyStoreError("no usage data available"))

	engine := setupUsageRouter(topUsers, new(mockGetUserDetails))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/top", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	eb := decodeErrorBody(t, w.Body.Bytes())
	assert.Equal(t, "empty_store", eb.Error.Type)
}

func TestGetUserDetailsHandler_Success(t *testing.T) {
	details := new(mockGetUserDetails)
	details.On("Execute", mock.Anything, mock.MatchedBy(func(q usageUC.GetUserDetailsQuery) bool {
		return q.Username == "alice" && q.Timestamp != nil
	})).Return(&usageDTO.UserDetailsResponse{
		Username:  "alice",
		Timestamp: "2022-12-15T23:59:59",
		Usage1Day: usageDTO.UsagePeriodDTO{UploadKB: 100, DownloadKB: 200, TotalKB: 300, Sessions: 1},
	}, nil)

	engine := setupUsageRouter(new(mockGetTopUsers), details)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/details?username=alice&timestamp=2022-12-15T23:59:59", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp usageDTO.UserDetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, 300.0, resp.Usage1Day.TotalKB)

	details.AssertExpectations(t)
}

func TestGetUserDetailsHandler_MissingParams(t *testing.T) {
	engine := setupUsageRouter(new(mockGetTopUsers), new(mockGetUserDetails))

	tests := []struct {
		name string
		url  string
	}{
		{"missing username", "/api/v1/users/details?timestamp=2022-12-15T00:00:00"},
		{"missing timestamp", "/api/v1/users/details?username=alice"},
		{"invalid timestamp", "/api/v1/users/details?username=alice&timestamp=bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			engine.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			eb := decodeErrorBody(t, w.Body.Bytes())
			assert.Equal(t, "validation_error", eb.Error.Type)
		})
	}
}

func TestGetUserDetailsHandler_NotFound(t *testing.T) {
	details := new(mockGetUserDetails)
	details.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.NewNotFoundError("user 'ghost' not found"))

	engine := setupUsageRouter(new(mockGetTopUsers), details)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/details?username=ghost&timestamp=2022-12-15T00:00:00", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	eb := decodeErrorBody(t, w.Body.Bytes())
	assert.Equal(t, "not_found", eb.Error.Type)
}
