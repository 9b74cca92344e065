package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"netwatch/internal/application/ingestion/usecases"
	"netwatch/internal/shared/constants"
	"netwatch/internal/shared/errors"
	"netwatch/internal/shared/logger"
	"netwatch/internal/shared/utils"
)

// UploadHandler serves CSV batch ingestion over multipart upload.
type UploadHandler struct {
	ingestCSV usecases.IngestCSVExecutor
	logger    logger.Interface
}

func NewUploadHandler(ingestCSV usecases.IngestCSVExecutor, logger logger.Interface) *UploadHandler {
	return &UploadHandler{
		ingestCSV: ingestCSV,
		logger:    logger,
	}
}

// Upload handles POST /api/v1/upload. The file form field carries the
// CSV; the clear_existing (default true) and batch_size query parameters
// tune the run.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file is required", err.Error()))
		return
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".csv" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("only .csv files are accepted"))
		return
	}

	if fileHeader.Size == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("uploaded file is empty"))
		return
	}
	if fileHeader.Size > constants.MaxUploadSizeBytes {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file exceeds the 50MB upload limit"))
		return
	}

	clearExisting := true
	if raw := c.Query("clear_existing"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("clear_existing must be a boolean"))
			return
		}
		clearExisting = v
	}

	batchSize := constants.DefaultBatchSize
	if raw := c.Query("batch_size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < constants.MinBatchSize || v > constants.MaxBatchSize {
			utils.ErrorResponseWithError(c, errors.NewValidationError(
				"batch_size must be an integer between 100 and 50000"))
			return
		}
		batchSize = v
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to open uploaded file", err.Error()))
		return
	}
	defer file.Close()

	// The whole file is read up front so encoding can be verified before
	// any rows are committed; the 50MB cap bounds memory.
	content, err := io.ReadAll(file)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to read uploaded file", err.Error()))
		return
	}
	if !utf8.Valid(content) {
		utils.ErrorResponseWithError(c, errors.NewValidationError("file must be UTF-8 encoded"))
		return
	}

	h.logger.Infow("processing csv upload",
		"filename", fileHeader.Filename,
		"size_bytes", fileHeader.Size,
		"clear_existing", clearExisting,
		"batch_size", batchSize)

	result, err := h.ingestCSV.Execute(c.Request.Context(), usecases.IngestCSVCommand{
		Reader:        bytes.NewReader(content),
		ClearExisting: clearExisting,
		BatchSize:     batchSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
