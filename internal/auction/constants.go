package auction

// Log messages
const (
	LogMsgLoadingHouses     = "Loading auction houses"
	LogMsgLoadingListings   = "Loading auction listings"
	LogMsgListingsLoaded    = "Auction listings loaded"
	LogMsgInvalidListing    = "Listing skipped, quantity is not positive"
	LogMsgListingsDiscarded = "Buffered listings of a failed house discarded"
	LogMsgSummarizing       = "Summarizing auction bucket"
	LogMsgSummaryLoaded     = "Auction summary loaded"
	LogMsgSummaryExists     = "Auction summary already loaded for this bucket"
	LogMsgTargetFailed      = "Auction target failed"
	LogMsgPruned            = "Auction history pruned"
)

// Error messages
const (
	ErrMsgListRealmsFailed = "failed to list connected realms"
	ErrMsgHouseIndexFailed = "failed to fetch auction house index"
	ErrMsgAuctionsFailed   = "failed to fetch auctions"
	ErrMsgResolveFailed    = "failed to resolve auction attribute"
	ErrMsgSummaryFailed    = "failed to summarize auctions"
	ErrMsgPruneFailed      = "failed to prune auction history"
	ErrMsgInvalidRetention = "retention days must be positive"
	ErrMsgEnqueueFailed    = "failed to enqueue record"
	ErrMsgCommitFailed     = "failed to commit records"
)
