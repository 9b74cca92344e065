package migration

import (
	"testing"
)

func TestNewManagerStrategySelection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		driver      string
		want        string
	}{
		{"development uses gorm automigrate", "development", "sqlite", "gorm_automigrate"},
		{"test with sqlite uses goose", "test", "sqlite", "goose"},
		{"production with sqlite uses goose", "production", "sqlite", "goose"},
		{"test with mysql uses golang-migrate", "test", "mysql", "golang_migrate"},
		{"production with mysql uses golang-migrate", "production", "mysql", "golang_migrate"},
		{"unknown environment falls back to gorm automigrate", "staging", "mysql", "gorm_automigrate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := NewManager(tt.environment, tt.driver)
			if got := manager.strategy.GetName(); got != tt.want {
				t.Errorf("NewManager(%q, %q) strategy = %q, want %q",
					tt.environment, tt.driver, got, tt.want)
			}
		})
	}
}

func TestNewManagerWithStrategy(t *testing.T) {
	manager := NewManagerWithStrategy(NewGormAutoMigrateStrategy())
	if got := manager.strategy.GetName(); got != "gorm_automigrate" {
		t.Errorf("NewManagerWithStrategy() strategy = %q, want %q", got, "gorm_automigrate")
	}
}

func TestGooseDialect(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"mysql", "mysql"},
		{"MySQL", "mysql"},
		{"sqlite", "sqlite3"},
		{"", "sqlite3"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			if got := GooseDialect(tt.driver); got != tt.want {
				t.Errorf("GooseDialect(%q) = %q, want %q", tt.driver, got, tt.want)
			}
		})
	}
}
