package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"folio/api/internal/section"
	"folio/api/internal/store"
)

// SkillGroup is one skills category with its members in stored order.
type SkillGroup struct {
	Category string        `json:"category"`
	Skills   []store.Skill `json:"skills"`
}

// SiteConfig is the aggregated public content snapshot. It is assembled
// per request; there is no cross-request cache, so every read reflects
// the store at call time.
type SiteConfig struct {
	Settings    map[string]string            `json:"settings"`
	Profile     *store.Profile               `json:"profile"`
	SkillGroups []SkillGroup                 `json:"skillGroups"`
	Projects    []store.Project              `json:"projects"`
	Experience  []store.Experience           `json:"experience"`
	Education   []store.Education            `json:"education"`
	Layouts     map[string][]section.Section `json:"layouts"`
}

// LoadConfig fetches all public content concurrently. Any single failure
// fails the whole load; there is no partial snapshot.
func (s *Service) LoadConfig(ctx context.Context) (*SiteConfig, error) {
	cfg := &SiteConfig{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		settings, err := s.store.ListSettings(gctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		cfg.Settings = flattenSettings(settings)
		return nil
	})
	g.Go(func() error {
		profile, err := s.store.GetProfile(gctx)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		cfg.Profile = profile
		return nil
	})
	g.Go(func() error {
		skills, err := s.store.ListSkills(gctx, true)
		if err != nil {
			return fmt.Errorf("load skills: %w", err)
		}
		cfg.SkillGroups = groupSkills(skills)
		return nil
	})
	g.Go(func() error {
		projects, err := s.store.ListProjects(gctx, true)
		if err != nil {
			return fmt.Errorf("load projects: %w", err)
		}
		cfg.Projects = projects
		return nil
	})
	g.Go(func() error {
		experience, err := s.store.ListExperience(gctx, true)
		if err != nil {
			return fmt.Errorf("load experience: %w", err)
		}
		cfg.Experience = experience
		return nil
	})
	g.Go(func() error {
		education, err := s.store.ListEducation(gctx, true)
		if err != nil {
			return fmt.Errorf("load education: %w", err)
		}
		cfg.Education = education
		return nil
	})
	g.Go(func() error {
		layouts, err := s.store.ListLayouts(gctx)
		if err != nil {
			return fmt.Errorf("load layouts: %w", err)
		}
		decoded := make(map[string][]section.Section, len(layouts))
		for _, layout := range layouts {
			sections, err := section.DecodeList(layout.Sections)
			if err != nil {
				return fmt.Errorf("decode layout %s: %w", layout.Page, err)
			}
			decoded[layout.Page] = sections
		}
		cfg.Layouts = decoded
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flattenSettings folds rows into a flat map. Keys are unique in storage;
// if duplicates ever appear the last row wins.
func flattenSettings(settings []store.SiteSetting) map[string]string {
	out := make(map[string]string, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}
	return out
}

// groupSkills buckets skills by their exact category string. Groups appear
// in first-seen order; members keep their stored order.
func groupSkills(skills []store.Skill) []SkillGroup {
	groups := make([]SkillGroup, 0)
	index := map[string]int{}
	for _, skill := range skills {
		i, ok := index[skill.Category]
		if !ok {
			i = len(groups)
			index[skill.Category] = i
			groups = append(groups, SkillGroup{Category: skill.Category})
		}
		groups[i].Skills = append(groups[i].Skills, skill)
	}
	return groups
}

// sharedFrom maps the aggregated snapshot to the shared data sections
// can request by key.
func sharedFrom(cfg *SiteConfig) section.Shared {
	return section.Shared{
		Profile:     cfg.Profile,
		SkillGroups: cfg.SkillGroups,
		Projects:    cfg.Projects,
		Experience:  cfg.Experience,
		Education:   cfg.Education,
	}
}

// PageSections resolves one page's layout into render-ready payloads.
// A page with no stored layout yields an empty list, not an error.
func (s *Service) PageSections(ctx context.Context, page string, preview bool) ([]section.Rendered, error) {
	layout, err := s.store.GetLayout(ctx, page)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []section.Rendered{}, nil
		}
		return nil, fmt.Errorf("get layout: %w", err)
	}

	sections, err := section.DecodeList(layout.Sections)
	if err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}

	cfg, err := s.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	return section.RenderPage(sections, sharedFrom(cfg), preview), nil
}
