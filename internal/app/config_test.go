package app

import (
	"context"
	"errors"
	"testing"

	"folio/api/internal/section"
	"folio/api/internal/store"
)

func TestGroupSkillsKeepsFirstSeenCategoryOrder(t *testing.T) {
	groups := groupSkills([]store.Skill{
		{Name: "Go", Category: "Backend"},
		{Name: "React", Category: "Frontend"},
		{Name: "Postgres", Category: "Backend"},
		{Name: "k8s", Category: "Infra"},
	})

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	want := []string{"Backend", "Frontend", "Infra"}
	for i, category := range want {
		if groups[i].Category != category {
			t.Errorf("group %d: expected %q, got %q", i, category, groups[i].Category)
		}
	}
	if len(groups[0].Skills) != 2 || groups[0].Skills[1].Name != "Postgres" {
		t.Errorf("unexpected backend members %+v", groups[0].Skills)
	}
}

func TestGroupSkillsTreatsCategoriesAsExactStrings(t *testing.T) {
	groups := groupSkills([]store.Skill{
		{Name: "Go", Category: "Backend"},
		{Name: "Rust", Category: "backend"},
	})
	if len(groups) != 2 {
		t.Fatalf("expected case-sensitive categories to stay separate, got %d groups", len(groups))
	}
}

func TestFlattenSettingsLastRowWins(t *testing.T) {
	flat := flattenSettings([]store.SiteSetting{
		{Key: "theme", Value: "light"},
		{Key: "title", Value: "Folio"},
		{Key: "theme", Value: "dark"},
	})
	if flat["theme"] != "dark" {
		t.Errorf("expected last value to win, got %q", flat["theme"])
	}
	if len(flat) != 2 {
		t.Errorf("expected 2 keys, got %d", len(flat))
	}
}

func TestLoadConfigAggregatesEverything(t *testing.T) {
	ms := newMemStore()
	svc := newTestService(ms, newFakeSessions())
	ctx := context.Background()

	_ = ms.UpsertSetting(ctx, "title", "Folio")
	_ = ms.UpsertProfile(ctx, store.Profile{ID: "profile", FullName: "Ada Example"})
	_ = ms.InsertSkill(ctx, store.Skill{ID: "skl_1", Name: "Go", Category: "Backend", Visible: true})
	_ = ms.InsertSkill(ctx, store.Skill{ID: "skl_2", Name: "Hidden", Category: "Backend", Visible: false})
	_ = ms.InsertProject(ctx, store.Project{ID: "prj_1", Title: "Folio", Visible: true})

	if _, err := svc.SaveLayout(ctx, "home", []section.Raw{{Type: "hero"}}, Session{Email: "seed"}); err != nil {
		t.Fatalf("seed layout: %v", err)
	}

	cfg, err := svc.LoadConfig(ctx)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Settings["title"] != "Folio" {
		t.Errorf("missing setting, got %+v", cfg.Settings)
	}
	if cfg.Profile == nil || cfg.Profile.FullName != "Ada Example" {
		t.Errorf("unexpected profile %+v", cfg.Profile)
	}
	if len(cfg.SkillGroups) != 1 || len(cfg.SkillGroups[0].Skills) != 1 {
		t.Errorf("expected only visible skills, got %+v", cfg.SkillGroups)
	}
	if len(cfg.Projects) != 1 {
		t.Errorf("expected one visible project, got %d", len(cfg.Projects))
	}
	if len(cfg.Layouts["home"]) != 1 {
		t.Errorf("expected decoded home layout, got %+v", cfg.Layouts)
	}
}

func TestLoadConfigFailsWhenAnyFetchFails(t *testing.T) {
	ms := newMemStore()
	ms.listProjectsFn = func(context.Context, bool) ([]store.Project, error) {
		return nil, errors.New("connection reset")
	}
	svc := newTestService(ms, newFakeSessions())

	if _, err := svc.LoadConfig(context.Background()); err == nil {
		t.Fatal("expected the aggregate load to fail")
	}
}

func TestPageSectionsUnknownPageIsEmpty(t *testing.T) {
	svc := newTestService(newMemStore(), newFakeSessions())

	rendered, err := svc.PageSections(context.Background(), "missing", false)
	if err != nil {
		t.Fatalf("expected no error for an unknown page, got %v", err)
	}
	if rendered == nil || len(rendered) != 0 {
		t.Fatalf("expected an empty list, got %+v", rendered)
	}
}

func TestPageSectionsFiltersHiddenAndThreadsPreview(t *testing.T) {
	ms := newMemStore()
	svc := newTestService(ms, newFakeSessions())
	ctx := context.Background()

	hidden := false
	_, err := svc.SaveLayout(ctx, "home", []section.Raw{
		{Type: "hero"},
		{Type: "about", Visible: &hidden},
	}, Session{Email: "seed"})
	if err != nil {
		t.Fatalf("seed layout: %v", err)
	}

	rendered, err := svc.PageSections(ctx, "home", true)
	if err != nil {
		t.Fatalf("PageSections: %v", err)
	}
	if len(rendered) != 1 {
		t.Fatalf("expected hidden section filtered, got %d", len(rendered))
	}
	if rendered[0].Props["preview"] != true {
		t.Errorf("expected preview flag in props, got %v", rendered[0].Props["preview"])
	}
}
