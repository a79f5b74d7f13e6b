package main

const serviceName = "ingest"

// Flag names
const (
	flagDate        = "date"
	flagHour        = "hour"
	flagDays        = "days"
	flagGameVersion = "game-version"
)

// Log and error messages
const (
	LogMsgMigrated          = "Migrations applied"
	LogMsgMetricsPushFailed = "Metrics push failed, run outcome unaffected"
	ErrMsgLoadConfig        = "failed to load config"
	ErrMsgSetupLogger       = "failed to set up logger"
	ErrMsgInvalidDate       = "invalid --date, want YYYY-MM-DD"
	ErrMsgInvalidHour       = "invalid --hour, want 0-23"
	ErrMsgInvalidVersion    = "invalid --game-version"
	ErrMsgUnknownStep       = "unknown step"
)
