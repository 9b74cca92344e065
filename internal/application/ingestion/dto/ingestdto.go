// Package dto defines the wire shapes of the ingestion API.
package dto

// IngestResultDTO reports the outcome of a completed CSV ingestion.
type IngestResultDTO struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	RecordsIngested int64  `json:"records_ingested"`
	ClearExisting   bool   `json:"clear_existing"`
}
