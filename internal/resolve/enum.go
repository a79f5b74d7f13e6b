// Package resolve maps upstream labels onto internal enumerations.
// Unknown values are errors; nothing defaults silently.
package resolve

import (
	"fmt"
	"slices"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

var (
	realmCategories = []domain.RealmCategory{
		domain.RealmCategoryBrazil,
		domain.RealmCategoryClassic,
		domain.RealmCategoryLatinAmerica,
		domain.RealmCategoryOceanic,
		domain.RealmCategoryUnitedStates,
		domain.RealmCategoryUSEast,
		domain.RealmCategoryUSWest,
	}
	realmPopulations = []domain.RealmPopulation{
		domain.RealmPopulationNew,
		domain.RealmPopulationRecommended,
		domain.RealmPopulationLow,
		domain.RealmPopulationMedium,
		domain.RealmPopulationHigh,
		domain.RealmPopulationFull,
		domain.RealmPopulationLocked,
	}
	realmStatuses = []domain.RealmStatus{domain.RealmStatusUp, domain.RealmStatusDown}
	realmTypes    = []domain.RealmType{
		domain.RealmTypeNormal,
		domain.RealmTypePVP,
		domain.RealmTypePVPRP,
		domain.RealmTypeRP,
	}
	timeLeft = []domain.TimeLeft{
		domain.TimeLeftShort,
		domain.TimeLeftMedium,
		domain.TimeLeftLong,
		domain.TimeLeftVeryLong,
	}
	factions = map[int]domain.Faction{
		domain.FactionIDAlliance:   domain.FactionAlliance,
		domain.FactionIDHorde:      domain.FactionHorde,
		domain.FactionIDBlackwater: domain.FactionBlackwater,
	}
)

func lookup[T ~string](label, value string, known []T) (T, error) {
	if slices.Contains(known, T(value)) {
		return T(value), nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", domain.ErrAmbiguousMapping, label, value)
}

// RealmCategory maps the upstream category label, e.g. "US East"
func RealmCategory(value string) (domain.RealmCategory, error) {
	return lookup(LabelRealmCategory, value, realmCategories)
}

// RealmPopulation maps population.type
func RealmPopulation(value string) (domain.RealmPopulation, error) {
	return lookup(LabelRealmPopulation, value, realmPopulations)
}

// RealmStatus maps status.type
func RealmStatus(value string) (domain.RealmStatus, error) {
	return lookup(LabelRealmStatus, value, realmStatuses)
}

// RealmType maps type.type
func RealmType(value string) (domain.RealmType, error) {
	return lookup(LabelRealmType, value, realmTypes)
}

// TimeLeft maps an auction's time_left
func TimeLeft(value string) (domain.TimeLeft, error) {
	return lookup(LabelTimeLeft, value, timeLeft)
}

// Faction maps an auction house id to its faction
func Faction(id int) (domain.Faction, error) {
	f, ok := factions[id]
	if !ok {
		return "", fmt.Errorf("%w: %s %d", domain.ErrAmbiguousMapping, LabelFaction, id)
	}
	return f, nil
}
