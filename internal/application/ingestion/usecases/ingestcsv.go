// Package usecases contains the application services for loading usage
// session data into the store.
package usecases

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"netwatch/internal/application/ingestion/dto"
	"netwatch/internal/domain/usage"
	"netwatch/internal/shared/constants"
	"netwatch/internal/shared/errors"
	"netwatch/internal/shared/logger"
	"netwatch/internal/shared/utils"
)

// csvColumns are the required header fields, in any order.
var csvColumns = []string{"username", "mac_address", "start_time", "usage_time", "upload", "download"}

// IngestCSVCommand describes one ingestion run. BatchSize zero means the
// default; ClearExisting wipes the store before the first batch so the
// run replaces rather than appends.
type IngestCSVCommand struct {
	Reader        io.Reader
	ClearExisting bool
	BatchSize     int
}

type IngestCSVExecutor interface {
	Execute(ctx context.Context, cmd IngestCSVCommand) (*dto.IngestResultDTO, error)
}

type IngestCSVUseCase struct {
	sessionRepo usage.SessionRepository
	logger      logger.Interface
}

func NewIngestCSVUseCase(
	sessionRepo usage.SessionRepository,
	logger logger.Interface,
) *IngestCSVUseCase {
	return &IngestCSVUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute streams the CSV through validation into batched inserts. Any
// malformed row aborts the run with a validation error naming the
// 1-indexed row; rows already committed in earlier batches stay.
func (uc *IngestCSVUseCase) Execute(ctx context.Context, cmd IngestCSVCommand) (*dto.IngestResultDTO, error) {
	batchSize := cmd.BatchSize
	if batchSize <= 0 {
		batchSize = constants.DefaultBatchSize
	}
	if batchSize < constants.MinBatchSize {
		batchSize = constants.MinBatchSize
	}
	if batchSize > constants.MaxBatchSize {
		batchSize = constants.MaxBatchSize
	}

	reader := csv.NewReader(cmd.Reader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError("CSV file is empty")
	}
	if err != nil {
		return nil, errors.NewValidationError("failed to read CSV header", err.Error())
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	if cmd.ClearExisting {
		if err := uc.sessionRepo.DeleteAll(ctx); err != nil {
			return nil, err
		}
		uc.logger.Infow("cleared existing usage data before ingestion")
	}

	var (
		batch    = make([]*usage.Session, 0, batchSize)
		ingested int64
		rowNum   = 1
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			return nil, errors.NewValidationError(
				fmt.Sprintf("row %d: malformed CSV record", rowNum), err.Error())
		}

		session, err := parseRow(record, columns, rowNum)
		if err != nil {
			return nil, err
		}

		batch = append(batch, session)
		if len(batch) >= batchSize {
			if err := uc.sessionRepo.InsertBatch(ctx, batch); err != nil {
				return nil, err
			}
			ingested += int64(len(batch))
			uc.logger.Debugw("committed ingestion batch",
				"batch_size", len(batch),
				"total_ingested", ingested)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := uc.sessionRepo.InsertBatch(ctx, batch); err != nil {
			return nil, err
		}
		ingested += int64(len(batch))
	}

	uc.logger.Infow("csv ingestion completed",
		"records_ingested", ingested,
		"clear_existing", cmd.ClearExisting)

	return &dto.IngestResultDTO{
		Status:          "success",
		Message:         fmt.Sprintf("ingested %d usage records", ingested),
		RecordsIngested: ingested,
		ClearExisting:   cmd.ClearExisting,
	}, nil
}

// mapColumns resolves each required column name to its index in the
// header row.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, name := range csvColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("CSV header is missing required columns: %s", strings.Join(missing, ", ")))
	}

	return columns, nil
}

func parseRow(record []string, columns map[string]int, rowNum int) (*usage.Session, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	startTime, err := utils.ParseTimestamp(field("start_time"))
	if err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("row %d: invalid start_time", rowNum), err.Error())
	}

	usageTimeSeconds, err := utils.ParseUsageTime(field("usage_time"))
	if err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("row %d: invalid usage_time", rowNum), err.Error())
	}

	uploadKB, err := parseVolume(field("upload"))
	if err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("row %d: invalid upload value", rowNum), err.Error())
	}

	downloadKB, err := parseVolume(field("download"))
	if err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("row %d: invalid download value", rowNum), err.Error())
	}

	session, err := usage.NewSession(
		field("username"),
		field("mac_address"),
		startTime,
		usageTimeSeconds,
		uploadKB,
		downloadKB,
	)
	if err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("row %d: %s", rowNum, err.Error()))
	}

	return session, nil
}

func parseVolume(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	if v < 0 {
		return 0, fmt.Errorf("must be non-negative, got %v", v)
	}
	return v, nil
}
