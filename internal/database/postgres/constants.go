package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced row is missing
	PgErrorCodeForeignKeyViolation = "23503"
)

// Advisory lock keys
const (
	// HashMaskPositiveInt64 keeps advisory lock keys positive
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
	// LockNamespace prefixes pipeline names before hashing
	LockNamespace = "freelunch:pipeline:"
)

// Error Messages - Record Operations
const (
	ErrMsgUnknownKind        = "no table for record kind"
	ErrMsgKindMismatch       = "record kind does not match batch kind"
	ErrMsgUnexpectedKey      = "unexpected primary key type"
	ErrMsgFailedToCheckExist = "failed to check record existence"
	ErrMsgFailedToCopy       = "failed to copy records"
	ErrMsgFailedToStage      = "failed to create staging table"
	ErrMsgFailedToMerge      = "failed to merge staged records"
	ErrMsgFailedToBeginTx    = "failed to begin transaction"
	ErrMsgFailedToCommitTx   = "failed to commit transaction"
)

// Error Messages - Catalog Queries
const (
	ErrMsgFailedToListProfessions   = "failed to list professions"
	ErrMsgFailedToListItemClasses   = "failed to list item classes"
	ErrMsgFailedToListStagedItems   = "failed to list staged item ids"
	ErrMsgFailedToGetItem           = "failed to get item"
	ErrMsgFailedToSetVendorFlag     = "failed to set vendor flag"
	ErrMsgFailedToListSkillTiers    = "failed to list crafting skill tiers"
	ErrMsgFailedToCheckStaged       = "failed to check staged recipe"
	ErrMsgFailedToListUnpromoted    = "failed to list unpromoted recipes"
	ErrMsgFailedToListStagedRows    = "failed to list staged rows"
	ErrMsgFailedToSetStagedTier     = "failed to set staged skill tier"
	ErrMsgFailedToListZeroQuantity  = "failed to list zero quantity rows"
	ErrMsgFailedToSetStagedQuantity = "failed to set staged quantity"
	ErrMsgFailedToListMissingMedia  = "failed to list recipes missing media"
	ErrMsgFailedToSetRecipeMedia    = "failed to set recipe media"
)

// Error Messages - Realm and Auction Queries
const (
	ErrMsgFailedToListConnectedRealms = "failed to list connected realms"
	ErrMsgFailedToCheckSummary        = "failed to check auction summary"
	ErrMsgFailedToAggregate           = "failed to aggregate auctions"
	ErrMsgFailedToDeleteAuctions      = "failed to delete auctions"
	ErrMsgFailedToDeleteSummaries     = "failed to delete auction summaries"
	ErrMsgFailedToVacuum              = "failed to vacuum"
	ErrMsgFailedToAcquireConn         = "failed to acquire lock connection"
	ErrMsgFailedToLock                = "failed to take advisory lock"
	ErrMsgFailedToUnlock              = "failed to release advisory lock"
	ErrMsgLockNotHeld                 = "advisory lock was not held"
)

// Log Messages
const (
	LogMsgBatchInserted = "Inserted batch"
	LogMsgVacuumed      = "Vacuumed table"
	LogMsgLockTaken     = "Took run lock"
	LogMsgLockReleased  = "Released run lock"
)

// SQL Query Constants
const (
	SQLCreateStaging = `CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP`
	SQLMergeStaging  = `INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT DO NOTHING`
	SQLExists        = `SELECT EXISTS (SELECT 1 FROM %s WHERE %s)`

	SQLVacuumAnalyze = `VACUUM ANALYZE %s`

	SQLTryAdvisoryLock = `SELECT pg_try_advisory_lock($1)`
	SQLAdvisoryUnlock  = `SELECT pg_advisory_unlock($1)`
)
