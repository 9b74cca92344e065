// Package migration manages database schema migrations with pluggable
// strategies: GORM auto-migration for development, goose SQL scripts for
// test and production, and golang-migrate for MySQL deployments.
package migration

import (
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"netwatch/internal/shared/constants"
	"netwatch/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a migration manager for the given environment and
// database driver. Development reconciles the schema with GORM; test and
// production apply versioned SQL scripts, via golang-migrate on MySQL and
// goose elsewhere.
func NewManager(environment, driver string) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case constants.EnvDevelopment:
		strategy = NewGormAutoMigrateStrategy()
	case constants.EnvTest, constants.EnvProduction:
		scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
		if strings.ToLower(driver) == "mysql" {
			// golang-migrate wants paired .up.sql/.down.sql files, kept
			// apart from the goose-annotated scripts.
			strategy = NewGolangMigrateStrategy(filepath.Join(scriptsPath, "mysql"))
		} else {
			strategy = NewGooseStrategy(scriptsPath, GooseDialect(driver))
		}
	default:
		strategy = NewGormAutoMigrateStrategy()
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	m.logger.Infow("database migration completed",
		"strategy", m.strategy.GetName())
	return nil
}

// GooseDialect maps a database driver name onto the goose dialect name.
func GooseDialect(driver string) string {
	switch strings.ToLower(driver) {
	case "mysql":
		return "mysql"
	default:
		return "sqlite3"
	}
}
