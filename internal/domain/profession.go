package domain

// Expansion is static reference data; SkillTierPrefix is matched against skill-tier names
type Expansion struct {
	ID              int    `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name" validate:"required"`
	SkillTierPrefix string `json:"skill_tier_prefix" yaml:"skill_tier_prefix" validate:"required"`
	MaxLevel        int    `json:"max_level" yaml:"max_level" validate:"min=1"`
	IsClassic       bool   `json:"is_classic" yaml:"is_classic"`
}

func (e *Expansion) Kind() Kind      { return KindExpansion }
func (e *Expansion) PrimaryKey() any { return e.ID }

// Profession is one upstream profession
type Profession struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	MediaURL        string `json:"media_url"`
	MediaFileDataID int    `json:"media_file_data_id"`
	IsPrimary       bool   `json:"is_primary"`
	IsCrafting      bool   `json:"is_crafting"`
}

func (p *Profession) Kind() Kind      { return KindProfession }
func (p *Profession) PrimaryKey() any { return p.ID }

// SkillTier belongs to a profession. Total skill levels come from the expansion tier table.
type SkillTier struct {
	ID                 int    `json:"id"`
	ProfessionID       int    `json:"profession_id"`
	Name               string `json:"name"`
	MinSkillLevel      int    `json:"min_skill_level"`
	MaxSkillLevel      int    `json:"max_skill_level"`
	MinTotalSkillLevel int    `json:"min_total_skill_level"`
	MaxTotalSkillLevel int    `json:"max_total_skill_level"`
	IsLegacyTier       bool   `json:"is_legacy_tier"`
	ExpansionID        *int   `json:"expansion_id,omitempty"`
}

func (s *SkillTier) Kind() Kind      { return KindSkillTier }
func (s *SkillTier) PrimaryKey() any { return s.ID }

func (s *SkillTier) References() []Reference {
	refs := []Reference{{Kind: KindProfession, Key: s.ProfessionID}}
	if s.ExpansionID != nil {
		refs = append(refs, Reference{Kind: KindExpansion, Key: *s.ExpansionID})
	}
	return refs
}
