// Package refdata loads the immutable reference tables injected into the ingestors.
package refdata

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/FreeLunch_Go/internal/domain"
)

//go:embed refdata.yaml
var defaultTables []byte

// SkillLevels is the absolute total-skill range of a skill tier
type SkillLevels struct {
	MinLevel     int  `yaml:"min_level" validate:"min=0"`
	MaxLevel     int  `yaml:"max_level" validate:"gtefield=MinLevel"`
	LevelRange   int  `yaml:"level_range" validate:"min=0"`
	IsLegacyTier bool `yaml:"is_legacy_tier"`
}

// ExpansionTier pairs an expansion with the skill levels of its tiers
type ExpansionTier struct {
	domain.Expansion `yaml:",inline"`
	Levels           SkillLevels `yaml:"skill_levels"`
}

// Prefix is the substring matched against skill-tier names
func (t ExpansionTier) Prefix() string {
	return t.SkillTierPrefix
}

// AuctionTarget is one connected realm whose houses are snapshotted on schedule
type AuctionTarget struct {
	Version          domain.GameVersion `yaml:"game_version" validate:"oneof=RETAIL CLASSIC"`
	Name             string             `yaml:"name"`
	ConnectedRealmID int                `yaml:"connected_realm_id" validate:"min=1"`
	FactionIDs       []int              `yaml:"faction_ids" validate:"min=1,dive,oneof=2 6 7"`
}

// Tables holds every reference table
type Tables struct {
	CraftingProfessions []string        `yaml:"crafting_professions" validate:"min=1,dive,required"`
	Expansions          []ExpansionTier `yaml:"expansions" validate:"min=1,dive"`
	ClassicLevelCutoff  int             `yaml:"classic_level_cutoff" validate:"min=0"`
	SubclassScanLimit   int             `yaml:"subclass_scan_limit" validate:"min=1"`
	VendorItems         []int           `yaml:"vendor_items" validate:"dive,min=1"`
	AuctionTargets      []AuctionTarget `yaml:"auction_targets" validate:"dive"`
}

// Default returns the embedded tables
func Default() (*Tables, error) {
	return Parse(defaultTables)
}

// Load reads tables from path, or the embedded defaults when path is empty
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgReadFailed, path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgDecodeFailed, err)
	}
	if err := validator.New().Struct(&t); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgValidationFailed, err)
	}
	if err := t.checkUnique(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) checkUnique() error {
	ids := make(map[int]bool, len(t.Expansions))
	prefixes := make(map[string]bool, len(t.Expansions))
	for _, e := range t.Expansions {
		if ids[e.ID] {
			return fmt.Errorf("%s: expansion id %d", ErrMsgDuplicateEntry, e.ID)
		}
		if prefixes[e.SkillTierPrefix] {
			return fmt.Errorf("%s: expansion prefix %q", ErrMsgDuplicateEntry, e.SkillTierPrefix)
		}
		ids[e.ID] = true
		prefixes[e.SkillTierPrefix] = true
	}
	return nil
}

// IsCraftingProfession reports whether name is on the crafting allow-list
func (t *Tables) IsCraftingProfession(name string) bool {
	return slices.Contains(t.CraftingProfessions, name)
}
