package section

import (
	"strings"
	"testing"
)

func TestResolveKnownAndUnknownTypes(t *testing.T) {
	for _, typ := range []string{"hero", "about", "skills", "projects", "projects-grid", "experience", "contact", "contact-cta", "education", "custom"} {
		if _, ok := Resolve(typ); !ok {
			t.Errorf("expected %q to be registered", typ)
		}
	}
	if _, ok := Resolve("carousel-v2"); ok {
		t.Error("expected carousel-v2 to be unknown")
	}
}

func TestRenderMergesSharedOverProps(t *testing.T) {
	s := Section{
		ID: "a", Type: "projects", Order: 0, Visible: true,
		Props: map[string]any{
			"heading":  "My work",
			"projects": "stale snapshot",
		},
	}
	shared := Shared{Projects: []string{"fresh"}}

	got := Render(s, shared, false)
	if got.Fallback {
		t.Fatal("unexpected fallback")
	}
	if got.Props["heading"] != "My work" {
		t.Errorf("stored prop lost: %v", got.Props["heading"])
	}
	projects, ok := got.Props["projects"].([]string)
	if !ok || projects[0] != "fresh" {
		t.Errorf("expected injected data to win over stored props, got %v", got.Props["projects"])
	}
	if got.Props["preview"] != false {
		t.Errorf("expected preview=false, got %v", got.Props["preview"])
	}
}

func TestRenderInjectsOnlyDeclaredSharedKeys(t *testing.T) {
	shared := Shared{
		Profile:  map[string]any{"fullName": "Ada"},
		Projects: []string{"p1"},
	}

	got := Render(Section{ID: "a", Type: "hero", Visible: true}, shared, false)
	if _, ok := got.Props["profile"]; !ok {
		t.Error("hero must receive profile data")
	}
	if _, ok := got.Props["projects"]; ok {
		t.Error("hero must not receive projects data")
	}

	got = Render(Section{ID: "b", Type: "custom", Visible: true, Props: map[string]any{"html": "<b>x</b>"}}, shared, false)
	for _, key := range []string{"profile", "projects", "skillGroups", "experience", "education"} {
		if _, ok := got.Props[key]; ok {
			t.Errorf("custom section must not receive shared key %q", key)
		}
	}
	if got.Props["html"] != "<b>x</b>" {
		t.Error("stored props must survive untouched")
	}
}

func TestRenderThreadsPreviewFlag(t *testing.T) {
	s := Section{ID: "a", Type: "hero", Visible: true, Props: map[string]any{}}
	got := Render(s, Shared{}, true)
	if got.Props["preview"] != true {
		t.Errorf("expected preview=true, got %v", got.Props["preview"])
	}
}

func TestRenderUnknownTypeYieldsLabeledFallback(t *testing.T) {
	s := Section{ID: "x", Type: "carousel-v2", Visible: true, Props: map[string]any{"a": 1}}
	got := Render(s, Shared{}, false)
	if !got.Fallback {
		t.Fatal("expected fallback")
	}
	if !strings.Contains(got.Message, "carousel-v2") {
		t.Errorf("fallback message must name the type, got %q", got.Message)
	}
}

func TestRenderPageSortsFiltersAndIsolatesUnknownTypes(t *testing.T) {
	sections := []Section{
		{ID: "a", Type: "hero", Order: 2, Visible: true, Props: map[string]any{}},
		{ID: "b", Type: "carousel-v2", Order: 1, Visible: true, Props: map[string]any{}},
		{ID: "c", Type: "about", Order: 3, Visible: false, Props: map[string]any{}},
		{ID: "d", Type: "skills", Order: 0, Visible: true, Props: map[string]any{}},
	}

	got := RenderPage(sections, Shared{SkillGroups: []string{"g"}}, false)
	if len(got) != 3 {
		t.Fatalf("expected 3 rendered sections, got %d", len(got))
	}
	if got[0].ID != "d" || got[1].ID != "b" || got[2].ID != "a" {
		t.Errorf("unexpected render order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if !got[1].Fallback {
		t.Error("expected unknown type to render as fallback")
	}
	if got[2].Fallback {
		t.Error("unknown sibling must not affect other sections")
	}
}

func TestDefaultsHeroHasPlaceholderHeadline(t *testing.T) {
	props := Defaults("hero")
	headline, _ := props["headline"].(string)
	if strings.TrimSpace(headline) == "" {
		t.Error("hero defaults must include a placeholder headline")
	}
	if _, ok := props["subheadline"]; !ok {
		t.Error("hero defaults must include a subheadline")
	}
}

func TestDefaultsUnknownTypeEmpty(t *testing.T) {
	props := Defaults("carousel-v2")
	if len(props) != 0 {
		t.Errorf("expected empty defaults for unknown type, got %v", props)
	}
}
