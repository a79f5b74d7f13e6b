package resolve

// Labels used in mapping errors
const (
	LabelRealmCategory   = "realm category"
	LabelRealmPopulation = "realm population"
	LabelRealmStatus     = "realm status"
	LabelRealmType       = "realm type"
	LabelFaction         = "auction house faction"
	LabelTimeLeft        = "auction time left"
)

// MinSuggestionScore is the lowest Jaro-Winkler similarity reported as a likely expansion
const MinSuggestionScore = 0.8
