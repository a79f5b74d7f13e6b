package pipeline

// Pipeline names. Each name is also the metric label and, unless lockNames says
// otherwise, the run-lock key.
const (
	PipelineCatalog   = "catalog"
	PipelineRealms    = "realms"
	PipelineAuctions  = "auctions"
	PipelineSummary   = "summary"
	PipelineRetention = "retention"
)

// lockNames maps pipelines that write the same tables onto one run-lock
var lockNames = map[string]string{
	PipelineSummary: PipelineAuctions,
}

// LockName returns the run-lock key of pipeline name
func LockName(name string) string {
	if lock, ok := lockNames[name]; ok {
		return lock
	}
	return name
}

// Step names
const (
	StepExpansions        = "expansions"
	StepProfessions       = "professions"
	StepSkillTiers        = "skill-tiers"
	StepItemClasses       = "item-classes"
	StepHierarchy         = "hierarchy"
	StepStageRecipes      = "stage-recipes"
	StepRepairSkillTiers  = "repair-skill-tiers"
	StepRepairQuantities  = "repair-quantities"
	StepItems             = "items"
	StepVendorFlags       = "vendor-flags"
	StepRecipes           = "recipes"
	StepRepairRecipeMedia = "repair-recipe-media"
	StepRegions           = "regions"
	StepRealms            = "realms"
	StepConnectedRealms   = "connected-realms"
	StepAuctionHouses     = "auction-houses"
	StepSnapshot          = "snapshot"
	StepSummary           = "summary"
	StepPrune             = "prune"
)

// Log messages
const (
	LogMsgRunStarted    = "Pipeline run started"
	LogMsgRunFinished   = "Pipeline run finished"
	LogMsgStepStarted   = "Step started"
	LogMsgStepFinished  = "Step finished"
	LogMsgStepFailed    = "Step failed"
	LogMsgReleaseFailed = "Failed to release run lock"
	LogMsgRunLockedSkip = "Skipping scheduled run, another run holds the lock"
)

// Error messages
const (
	ErrMsgStepFailed = "step failed"
)
