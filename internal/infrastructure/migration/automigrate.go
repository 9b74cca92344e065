package migration

import (
	"netwatch/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UsageSessionModel{},
	}
}
