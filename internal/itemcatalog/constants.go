package itemcatalog

// DefaultHierarchyCacheSize bounds the class x subclass existence cache
const DefaultHierarchyCacheSize = 4096

// Log messages
const (
	LogMsgLoadingItemClasses = "Loading item classes"
	LogMsgScanningHierarchy  = "Scanning item subclasses"
	LogMsgScanStopped        = "Subclass scan stopped at first missing id"
	LogMsgLoadingItems       = "Loading items"
	LogMsgVersionUnresolved  = "Item version could not be resolved"
	LogMsgVersionMalformed   = "Item version response could not be decoded"
	LogMsgItemUnresolved     = "Item skipped, no version could be resolved"
	LogMsgItemsDone          = "Items loaded"
	LogMsgVendorFlagsUpdated = "Vendor flags updated"
	LogMsgMissingMedia       = "Item has no media asset"
)

// Error messages
const (
	ErrMsgIndexFailed     = "failed to fetch item class index"
	ErrMsgListFailed      = "failed to list item classes"
	ErrMsgScanFailed      = "item subclass scan failed"
	ErrMsgStagedIDsFailed = "failed to list staged item ids"
	ErrMsgItemFailed      = "failed to resolve item"
	ErrMsgHierarchyFailed = "failed to look up item class hierarchy"
	ErrMsgVendorFailed    = "failed to update vendor flags"
	ErrMsgEnqueueFailed   = "failed to enqueue record"
	ErrMsgCommitFailed    = "failed to commit records"
)
