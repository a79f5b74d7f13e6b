package recipe

// Staged and promoted row name formats
const (
	stagedNameFormat  = "%s Reagent"
	reagentNameFormat = "%s Reagent - %s"
)

// Log messages
const (
	LogMsgStagingRecipes       = "Staging recipe items"
	LogMsgStagingDone          = "Recipe items staged"
	LogMsgRecipeSkipped        = "Recipe skipped"
	LogMsgReagentSkipped       = "Reagent skipped, item not loaded"
	LogMsgPromotingRecipes     = "Promoting staged recipes"
	LogMsgPromotionDone        = "Recipes promoted"
	LogMsgFactionVariantPicked = "Staged rows disagree on crafted item, keeping the lowest id"
	LogMsgSkillTiersRepaired   = "Staged skill tiers repaired"
	LogMsgQuantitiesRepaired   = "Staged quantities repaired"
	LogMsgMediaRepaired        = "Recipe media repaired"
	LogMsgMediaUnavailable     = "Recipe media unavailable"
)

// Skip reasons, logged with LogMsgRecipeSkipped
const (
	skipNoReagents      = "no reagents"
	skipNoCraftedItem   = "no crafted item"
	skipCraftedMissing  = "crafted item not loaded"
	skipBadQuantity     = "crafted quantity is neither a value nor a range"
	skipUpstreamMissing = "recipe not available upstream"
)

// Error messages
const (
	ErrMsgListTiersFailed    = "failed to list crafting skill tiers"
	ErrMsgSkillTierFailed    = "failed to fetch skill tier"
	ErrMsgRecipeFailed       = "failed to fetch recipe"
	ErrMsgMediaFailed        = "failed to fetch recipe media"
	ErrMsgStagedLookupFailed = "failed to read staged recipe items"
	ErrMsgItemLookupFailed   = "failed to look up item"
	ErrMsgRepairFailed       = "failed to repair staged rows"
	ErrMsgEnqueueFailed      = "failed to enqueue record"
	ErrMsgCommitFailed       = "failed to commit records"
)
