package resolve

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/osse101/FreeLunch_Go/internal/refdata"
)

// ExpansionTier returns the first tier whose prefix occurs in the skill-tier name.
// Order of tiers is the contract: earlier entries win over later ones.
func ExpansionTier(name string, tiers []refdata.ExpansionTier) (refdata.ExpansionTier, bool) {
	for _, t := range tiers {
		if strings.Contains(name, t.Prefix()) {
			return t, true
		}
	}
	return refdata.ExpansionTier{}, false
}

// ClosestExpansion suggests the prefix most similar to any word run in name.
// It is only used to annotate logs for names that did not match.
func ClosestExpansion(name string, tiers []refdata.ExpansionTier) (string, float64) {
	words := strings.Fields(name)
	var best string
	var bestScore float64
	for _, t := range tiers {
		width := len(strings.Fields(t.Prefix()))
		for i := 0; i+width <= len(words); i++ {
			candidate := strings.Join(words[i:i+width], " ")
			score := matchr.JaroWinkler(strings.ToLower(candidate), strings.ToLower(t.Prefix()), false)
			if score > bestScore {
				best, bestScore = t.Prefix(), score
			}
		}
	}
	return best, bestScore
}
