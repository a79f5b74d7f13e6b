package config

// Defaults
const (
	DefaultBNetRegion   = "us"
	DefaultBNetLocale   = "en_US"
	DefaultBNetTokenURL = "https://oauth.battle.net/token"
	// BNetAPIBaseURLPattern is formatted with the region
	BNetAPIBaseURLPattern = "https://%s.api.blizzard.com"
)

// Error Messages
const (
	ErrMsgInvalidConfig  = "invalid configuration"
	ErrMsgInvalidLocale  = "invalid BNET_LOCALE"
	ErrMsgMissingEnvVars = "missing required environment variables"
	ErrMsgSchemaNotSet   = "ENV_SCHEMA_VERSION is not set"
	ErrMsgSchemaMismatch = "ENV_SCHEMA_VERSION mismatch"
)

// Warning messages
const (
	WarnMsgDefaultDBPassword = "DB_PASSWORD is unset or uses the default value"
	WarnMsgUnsupportedRegion = "BNET_REGION has no Battle.net API host"
	WarnMsgRateAboveLimit    = "BNET_REQUESTS_PER_SECOND exceeds the Battle.net client limit"
	WarnMsgNoPushGateway     = "METRICS_PUSH_URL is not set, ingest run metrics will not be pushed"
)
