package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Service identity
	ServiceName = "netwatch"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// Ingestion batching
	DefaultBatchSize = 5000
	MinBatchSize     = 100
	MaxBatchSize     = 50000

	// Upload limits
	MaxUploadSizeBytes = 50 << 20 // 50 MB

	// HTTP Headers
	HeaderContentType = "Content-Type"
	HeaderXRequestID  = "X-Request-ID"

	// Database table names
	TableUsageSessions = "usage_sessions"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)
