package loader

// Defaults
const (
	DefaultChunkSize     = 100
	DefaultExistenceSize = 200_000
)

// Error messages
const (
	ErrMsgExistsCheckFailed = "existence check failed"
	ErrMsgFlushFailed       = "bulk insert failed"
	ErrMsgMissingReference  = "missing reference"
)

// Log messages
const (
	LogMsgFlushed = "Flushed records"
)
