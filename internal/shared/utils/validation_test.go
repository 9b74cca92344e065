package utils

import (
	"testing"

	"netwatch/internal/shared/errors"
)

type paginatedQuery struct {
	Page    int    `json:"page" validate:"omitempty,min=1"`
	PerPage int    `json:"per_page" validate:"omitempty,min=1,max=100"`
	Name    string `json:"name" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   paginatedQuery
		wantErr bool
		detail  string
	}{
		{
			name:  "valid",
			input: paginatedQuery{Page: 1, PerPage: 10, Name: "alice"},
		},
		{
			name:  "zero values pass omitempty",
			input: paginatedQuery{Name: "alice"},
		},
		{
			name:    "negative page",
			input:   paginatedQuery{Page: -1, Name: "alice"},
			wantErr: true,
			detail:  "page must be at least 1",
		},
		{
			name:    "per_page above max",
			input:   paginatedQuery{PerPage: 500, Name: "alice"},
			wantErr: true,
			detail:  "per_page must be at most 100",
		},
		{
			name:    "missing required field",
			input:   paginatedQuery{Page: 1},
			wantErr: true,
			detail:  "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateStruct() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}
			appErr := errors.GetAppError(err)
			if appErr == nil || appErr.Type != errors.ErrorTypeValidation {
				t.Fatalf("ValidateStruct() error = %v, want validation error", err)
			}
			if tt.detail != "" && appErr.Details != tt.detail {
				t.Errorf("ValidateStruct() details = %q, want %q", appErr.Details, tt.detail)
			}
		})
	}
}
