package config

import "time"

// Default runtime limits and guardrails for the editor host process. These
// values are conservative and are referenced by internal/runtime and
// editor's document manager.
const (
	// Concurrency
	DefaultMaxConcurrentRequests = 10
	DefaultMaxOpenDocuments      = 4
)

const (
	// Timeouts
	DefaultOperationTimeout      = 30 * time.Second
	DefaultAcquireRequestTimeout = 2 * time.Second
	DefaultDocumentIdleTTL       = 30 * time.Minute
	DefaultDocumentCleanupPeriod = 5 * time.Minute
)

const (
	// Payload and row bounds. runtime.NewLimits copies them into
	// runtime.Limits; no request path checks a payload size, a cell count
	// or a row count against them.
	DefaultMaxPayloadBytes = 10 * 1024 * 1024
	DefaultMaxCellsPerOp   = 50_000
	DefaultPreviewRowLimit = 500
)

// Default Markdown dialect recognized when config.Options omits a field.
const (
	DefaultRootMarker          = "# Tables"
	DefaultSheetHeaderLevel    = 2
	DefaultTableHeaderLevel    = 3
	DefaultColumnSeparator     = "|"
	DefaultHeaderSeparatorChar = "-"
)
