package profession

// ProfessionTypePrimary marks primary professions in the profession detail
const ProfessionTypePrimary = "PRIMARY"

// Log messages
const (
	LogMsgLoadingExpansions  = "Loading expansions"
	LogMsgLoadingProfessions = "Loading professions"
	LogMsgLoadingSkillTiers  = "Loading skill tiers"
	LogMsgUnmatchedTier      = "Skill tier matches no expansion prefix"
	LogMsgMissingMedia       = "Profession has no media asset"
	LogMsgStepDone           = "Step complete"
)

// Error messages
const (
	ErrMsgIndexFailed      = "failed to fetch profession index"
	ErrMsgProfessionFailed = "failed to fetch profession"
	ErrMsgMediaFailed      = "failed to fetch profession media"
	ErrMsgSkillTierFailed  = "failed to fetch skill tier"
	ErrMsgListFailed       = "failed to list professions"
	ErrMsgEnqueueFailed    = "failed to enqueue record"
	ErrMsgCommitFailed     = "failed to commit records"
)
