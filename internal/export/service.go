package export

import (
	"context"
	"fmt"

	"folio/api/internal/store"
)

// DataStore defines the data access needed to build a résumé.
type DataStore interface {
	GetProfile(ctx context.Context) (*store.Profile, error)
	ListSkills(ctx context.Context, visibleOnly bool) ([]store.Skill, error)
	ListExperience(ctx context.Context, visibleOnly bool) ([]store.Experience, error)
	ListEducation(ctx context.Context, visibleOnly bool) ([]store.Education, error)
}

// Service generates résumé exports from stored portfolio content.
type Service struct {
	store DataStore
}

// NewService creates a new export service.
func NewService(store DataStore) *Service {
	return &Service{store: store}
}

// ExportResume builds the résumé from visible content and renders a PDF.
func (s *Service) ExportResume(ctx context.Context) (*Result, error) {
	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNoProfile
	}

	skills, err := s.store.ListSkills(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	experience, err := s.store.ListExperience(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list experience: %w", err)
	}
	education, err := s.store.ListEducation(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list education: %w", err)
	}

	data := BuildTemplateData(profile, skills, experience, education)
	html, err := RenderResumeHTML(data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	return exportPDF(html, profile.FullName)
}

// BuildTemplateData shapes stored records into template input. Skills are
// grouped by category in first-seen order.
func BuildTemplateData(profile *store.Profile, skills []store.Skill, experience []store.Experience, education []store.Education) TemplateData {
	data := TemplateData{
		FullName: profile.FullName,
		Headline: profile.Headline,
		Bio:      profile.Bio,
		Email:    profile.Email,
		Socials:  profile.Socials,
	}
	if profile.Phone != nil {
		data.Phone = *profile.Phone
	}
	if profile.Location != nil {
		data.Location = *profile.Location
	}

	groupIndex := map[string]int{}
	for _, skill := range skills {
		idx, ok := groupIndex[skill.Category]
		if !ok {
			idx = len(data.Skills)
			groupIndex[skill.Category] = idx
			data.Skills = append(data.Skills, TemplateSkillGroup{Category: skill.Category})
		}
		data.Skills[idx].Names = append(data.Skills[idx].Names, skill.Name)
	}

	for _, e := range experience {
		entry := TemplateExperience{
			Company:    e.Company,
			Role:       e.Role,
			Period:     formatPeriod(e.StartDate, e.EndDate),
			Summary:    e.Summary,
			Highlights: e.Highlights,
		}
		if e.Location != nil {
			entry.Location = *e.Location
		}
		data.Experience = append(data.Experience, entry)
	}

	for _, e := range education {
		data.Education = append(data.Education, TemplateEducation{
			School: e.School,
			Degree: e.Degree,
			Field:  e.Field,
			Period: formatPeriod(e.StartYear, e.EndYear),
			Notes:  e.Notes,
		})
	}

	return data
}

func formatPeriod(start string, end *string) string {
	if end == nil || *end == "" {
		return start + " – Present"
	}
	return start + " – " + *end
}
