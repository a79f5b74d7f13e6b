package resolve

import "github.com/osse101/FreeLunch_Go/internal/bnet"

// CraftedItem picks the output of a recipe: Alliance variant, then Horde, then the
// unfactioned item. ok is false for recipes that produce nothing, such as enchants.
func CraftedItem(r *bnet.Recipe) (itemID int, ok bool) {
	if r == nil {
		return 0, false
	}
	switch {
	case r.AllianceCraftedItem != nil:
		return r.AllianceCraftedItem.ID, true
	case r.HordeCraftedItem != nil:
		return r.HordeCraftedItem.ID, true
	case r.CraftedItem != nil:
		return r.CraftedItem.ID, true
	default:
		return 0, false
	}
}
