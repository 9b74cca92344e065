// Package models contains the GORM persistence models. They form the
// anti-corruption layer between the domain entities and the database.
package models

import (
	"time"

	"netwatch/internal/shared/constants"
)

// UsageSessionModel is the persistence model for recorded usage sessions.
// Aggregation queries rely on the single-column indexes on username and
// start_time plus the composite (username, start_time) index; total_kb is
// denormalized at write time so window sums never recompute it.
type UsageSessionModel struct {
	ID               uint      `gorm:"primarykey"`
	Username         string    `gorm:"size:255;not null;index:idx_username;index:idx_username_start_time,priority:1"`
	MACAddress       string    `gorm:"column:mac_address;size:17;not null"`
	StartTime        time.Time `gorm:"not null;index:idx_start_time;index:idx_username_start_time,priority:2"`
	UsageTimeSeconds int       `gorm:"not null"`
	UploadKB         float64   `gorm:"column:upload_kb;not null"`
	DownloadKB       float64   `gorm:"column:download_kb;not null"`
	TotalKB          float64   `gorm:"column:total_kb;not null"`
}

// TableName specifies the table name for GORM
func (UsageSessionModel) TableName() string {
	return constants.TableUsageSessions
}
