// Package profession loads expansions, professions and their skill tiers.
package profession

import (
	"context"
	"fmt"

	"github.com/osse101/FreeLunch_Go/internal/bnet"
	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/loader"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/refdata"
	"github.com/osse101/FreeLunch_Go/internal/repository"
	"github.com/osse101/FreeLunch_Go/internal/resolve"
)

// Catalog is the part of the upstream client this package reads
type Catalog interface {
	GetProfessionIndex(ctx context.Context) (*bnet.ProfessionIndex, error)
	GetProfession(ctx context.Context, professionID int) (*bnet.Profession, error)
	GetProfessionMedia(ctx context.Context, professionID int) (*bnet.Media, error)
	GetSkillTier(ctx context.Context, professionID, skillTierID int) (*bnet.SkillTier, error)
}

// Service defines the profession load steps
type Service interface {
	LoadExpansions(ctx context.Context) error
	LoadProfessions(ctx context.Context) error
	LoadSkillTiers(ctx context.Context) error
}

type service struct {
	catalog Catalog
	repo    repository.Profession
	loader  *loader.Loader
	tables  *refdata.Tables
}

// NewService creates a new profession service
func NewService(catalog Catalog, repo repository.Profession, ld *loader.Loader, tables *refdata.Tables) Service {
	return &service{
		catalog: catalog,
		repo:    repo,
		loader:  ld,
		tables:  tables,
	}
}

// LoadExpansions writes the static expansion rows
func (s *service) LoadExpansions(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgLoadingExpansions, "count", len(s.tables.Expansions))

	for _, tier := range s.tables.Expansions {
		exp := tier.Expansion
		if err := s.loader.Add(ctx, &exp); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}
	}
	if err := s.loader.CommitRemaining(ctx, domain.KindExpansion); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return nil
}

// LoadProfessions fetches every profession with its media and detail
func (s *service) LoadProfessions(ctx context.Context) error {
	log := logger.FromContext(ctx)

	index, err := s.catalog.GetProfessionIndex(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgIndexFailed, err)
	}
	log.Info(LogMsgLoadingProfessions, "count", len(index.Professions))

	for _, ref := range index.Professions {
		media, err := s.catalog.GetProfessionMedia(ctx, ref.ID)
		if err != nil {
			return fmt.Errorf("%s %d: %w", ErrMsgMediaFailed, ref.ID, err)
		}
		detail, err := s.catalog.GetProfession(ctx, ref.ID)
		if err != nil {
			return fmt.Errorf("%s %d: %w", ErrMsgProfessionFailed, ref.ID, err)
		}

		p := &domain.Profession{
			ID:         ref.ID,
			Name:       ref.Name,
			IsPrimary:  detail.Type.Type == ProfessionTypePrimary,
			IsCrafting: s.tables.IsCraftingProfession(ref.Name),
		}
		if asset, ok := media.Primary(); ok {
			p.MediaURL = asset.Value
			p.MediaFileDataID = asset.FileDataID
		} else {
			log.Warn(LogMsgMissingMedia, "profession_id", ref.ID)
		}

		if err := s.loader.Add(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
		}
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindProfession); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	log.Info(LogMsgStepDone, "step", "professions")
	return nil
}

// LoadSkillTiers walks the skill tiers of every persisted profession
func (s *service) LoadSkillTiers(ctx context.Context) error {
	log := logger.FromContext(ctx)

	professions, err := s.repo.ListProfessions(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgListFailed, err)
	}
	log.Info(LogMsgLoadingSkillTiers, "professions", len(professions))

	for _, p := range professions {
		detail, err := s.catalog.GetProfession(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("%s %d: %w", ErrMsgProfessionFailed, p.ID, err)
		}
		for _, ref := range detail.SkillTiers {
			tier, err := s.catalog.GetSkillTier(ctx, p.ID, ref.ID)
			if err != nil {
				return fmt.Errorf("%s %d/%d: %w", ErrMsgSkillTierFailed, p.ID, ref.ID, err)
			}
			if err := s.loader.Add(ctx, s.buildSkillTier(ctx, p.ID, ref, tier)); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgEnqueueFailed, err)
			}
		}
	}

	if err := s.loader.CommitRemaining(ctx, domain.KindSkillTier); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	log.Info(LogMsgStepDone, "step", "skill_tiers")
	return nil
}

func (s *service) buildSkillTier(ctx context.Context, professionID int, ref bnet.Ref, tier *bnet.SkillTier) *domain.SkillTier {
	st := &domain.SkillTier{
		ID:            ref.ID,
		ProfessionID:  professionID,
		Name:          ref.Name,
		MinSkillLevel: tier.MinimumSkillLevel,
		MaxSkillLevel: tier.MaximumSkillLevel,
	}

	exp, ok := resolve.ExpansionTier(ref.Name, s.tables.Expansions)
	if !ok {
		suggestion, score := resolve.ClosestExpansion(ref.Name, s.tables.Expansions)
		args := []any{"skill_tier_id", ref.ID, "name", ref.Name}
		if score >= resolve.MinSuggestionScore {
			args = append(args, "closest_prefix", suggestion, "score", score)
		}
		logger.FromContext(ctx).Warn(LogMsgUnmatchedTier, args...)
		return st
	}

	id := exp.ID
	st.ExpansionID = &id
	st.MinTotalSkillLevel = exp.Levels.MinLevel
	st.MaxTotalSkillLevel = exp.Levels.MaxLevel
	st.IsLegacyTier = exp.Levels.IsLegacyTier
	return st
}
