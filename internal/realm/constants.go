package realm

const (
	connectedRealmNameFormat  = "Connected Realm - %d"
	realmConnectionNameFormat = "Realm Connection - %d_%d"
)

// Log messages
const (
	LogMsgLoadingRegions         = "Loading regions"
	LogMsgLoadingRealms          = "Loading realms"
	LogMsgLoadingConnectedRealms = "Loading connected realms"
)

// Error messages
const (
	ErrMsgIndexFailed          = "failed to fetch index"
	ErrMsgRegionFailed         = "failed to fetch region"
	ErrMsgRealmFailed          = "failed to fetch realm"
	ErrMsgConnectedRealmFailed = "failed to fetch connected realm"
	ErrMsgResolveFailed        = "failed to resolve realm attribute"
	ErrMsgEnqueueFailed        = "failed to enqueue record"
	ErrMsgCommitFailed         = "failed to commit records"
)
