package builder

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"folio/api/internal/section"
)

type fakePersister struct {
	sections []section.Section
	loadErr  error
	saveErr  error
	saved    [][]section.Section
}

func (f *fakePersister) LoadSections(_ context.Context, _ string) ([]section.Section, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]section.Section, len(f.sections))
	copy(out, f.sections)
	return out, nil
}

func (f *fakePersister) SaveSections(_ context.Context, _ string, sections []section.Section) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, sections)
	return nil
}

func loadedEditor(t *testing.T, sections []section.Section) (*Editor, *fakePersister) {
	t.Helper()
	fp := &fakePersister{sections: sections}
	e := New(fp, "home")
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return e, fp
}

func orders(sections []section.Section) []int {
	out := make([]int, len(sections))
	for i, s := range sections {
		out[i] = s.Order
	}
	return out
}

func TestLoadFailureLeavesEditorReadyWithError(t *testing.T) {
	fp := &fakePersister{loadErr: errors.New("store down")}
	e := New(fp, "home")
	if err := e.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if !e.Loaded() {
		t.Error("editor must become ready even when load fails")
	}
	if e.LoadError() == nil {
		t.Error("load error must be retained")
	}
	if len(e.Sections()) != 0 {
		t.Error("failed load must yield an empty list")
	}
}

func TestAddSectionOnEmptyList(t *testing.T) {
	e, _ := loadedEditor(t, nil)

	s := e.AddSection("")
	if s.Order != 0 {
		t.Errorf("expected order 0, got %d", s.Order)
	}
	if !s.Visible {
		t.Error("new sections start visible")
	}
	if s.Type != "hero" {
		t.Errorf("expected default type hero, got %s", s.Type)
	}
	if headline, _ := s.Props["headline"].(string); headline == "" {
		t.Error("hero section must start with a placeholder headline")
	}
	if e.Selected() != s.ID {
		t.Error("new section becomes the selection")
	}
	if !e.Dirty() {
		t.Error("adding a section dirties the editor")
	}
}

func TestAddSectionAppendsWithNextOrder(t *testing.T) {
	e, _ := loadedEditor(t, []section.Section{
		{ID: "a", Type: "hero", Order: 0, Visible: true, Props: map[string]any{}},
	})
	s := e.AddSection("about")
	if s.Order != 1 {
		t.Errorf("expected order 1, got %d", s.Order)
	}
}

func TestSelectSection(t *testing.T) {
	e, _ := loadedEditor(t, []section.Section{
		{ID: "a", Type: "hero", Order: 0, Visible: true, Props: map[string]any{}},
	})
	if err := e.SelectSection("a"); err != nil {
		t.Fatalf("SelectSection: %v", err)
	}
	if e.Selected() != "a" {
		t.Error("selection not applied")
	}
	if err := e.SelectSection("nope"); !errors.Is(err, ErrSectionNotFound) {
		t.Errorf("expected ErrSectionNotFound, got %v", err)
	}
	if e.Selected() != "a" {
		t.Error("failed select must not change selection")
	}
	if err := e.SelectSection(""); err != nil {
		t.Fatalf("clear selection: %v", err)
	}
	if e.Selected() != "" {
		t.Error("empty id clears selection")
	}
	if e.Dirty() {
		t.Error("selection changes are not edits")
	}
}

func TestUpdateSectionPropsShallowMerge(t *testing.T) {
	e, _ := loadedEditor(t, []section.Section{
		{ID: "a", Type: "hero", Order: 0, Visible: true, Props: map[string]any{"headline": "old", "ctaLabel": "go"}},
	})
	if err := e.UpdateSectionProps("a", map[string]any{"headline": "new"}); err != nil {
		t.Fatalf("UpdateSectionProps: %v", err)
	}
	got := e.Sections()[0]
	if got.Props["headline"] != "new" {
		t.Errorf("expected merged headline, got %v", got.Props["headline"])
	}
	if got.Props["ctaLabel"] != "go" {
		t.Error("untouched props must survive the merge")
	}
	if got.Order != 0 || !got.Visible || got.Type != "hero" {
		t.Error("props update must not alter order, visibility, or type")
	}
}

func TestUpdateSectionTypeRetainsProps(t *testing.T) {
	e, _ := loadedEditor(t, []section.Section{
		{ID: "a", Type: "hero", Order: 0, Visible: true, Props: map[string]any{"headline": "h"}},
	})
	if err := e.UpdateSectionType("a", "about"); err != nil {
		t.Fatalf("UpdateSectionType: %v", err)
	}
	got := e.Sections()[0]
	if got.Type != "about" {
		t.Errorf("type not updated: %s", got.Type)
	}
	if got.Props["headline"] != "h" {
		t.Error("props must be retained across a type change")
	}
}

func TestToggleVisible(t *testing.T) {
	e, _ := loadedEditor(t, []section.Section{
		{ID: "a", Type: "hero", Order: 0, Visible: true, Props: map[string]any{}},
	})
	if err := e.ToggleVisible("a"); err != nil {
		t.Fatalf("ToggleVisible: %v", err)
	}
	if e.Sections()[0].Visible {
		t.Error("expected visible=false after toggle")
	}
	if err := e.ToggleVisible("a"); err != nil {
		t.Fatalf("ToggleVisible: %v", err)
	}
	if !e.Sections()[0].Visible {
		t.Error("expected visible=true after second toggle")
	}
}

func TestReorderReindexesContiguously(t *testing.T) {
	e, _ := loadedEditor(t, []section.Section{
		{ID: "a", Type: "hero", Order: 0, Visible: true, Props: map[string]any{}},
		{ID: "b", Type: "about", Order: 1, Visible: true, Props: map[string]any{}},
		{ID: "c", Type: "skills", Order: 2, Visible: true, Props: map[string]any{}},
	})
	if err := e.Reorder("c", 0); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	got := e.Sections()
	if got[0].ID != "c" || got[1].ID != "a" || got[2].ID != "b" {
		t.Errorf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if !reflect.DeepEqual(orders(got), []int{0, 1, 2}) {
		t.Errorf("orders must be contiguous zero-based, got %v", orders(got))
	}
}

func TestReorderClampsIndex(t *testing.T) {
	e, _ := loadedEditor(t, []section.Section{
		{ID: "a", Type: "hero", Order: 0, Visible: true, Props: map[string]any{}},
		{ID: "b", Type: "about", Order: 1, Visible: true, Props: map[string]any{}},
	})
	if err := e.Reorder("a", 99); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	got := e.Sections()
	if got[1].ID != "a" {
		t.Errorf("expected a moved to the end, got %s", got[1].ID)
	}
	if !reflect.DeepEqual(orders(got), []int{0, 1}) {
		t.Errorf("orders must stay contiguous, got %v", orders(got))
	}
}

func TestDeleteSectionReindexesAndClearsSelection(t *testing.T) {
	e, _ := loadedEditor(t, []section.Section{
		{ID: "a", Type: "hero", Order: 0, Visible: true, Props: map[string]any{}},
		{ID: "b", Type: "about", Order: 1, Visible: true, Props: map[string]any{}},
		{ID: "c", Type: "skills", Order: 2, Visible: true, Props: map[string]any{}},
	})
	if err := e.SelectSection("b"); err != nil {
		t.Fatalf("SelectSection: %v", err)
	}
	if err := e.DeleteSection("b"); err != nil {
		t.Fatalf("DeleteSection: %v", err)
	}
	got := e.Sections()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("unexpected remaining sections: %+v", got)
	}
	if !reflect.DeepEqual(orders(got), []int{0, 1}) {
		t.Errorf("orders must be re-indexed, got %v", orders(got))
	}
	if e.Selected() != "" {
		t.Error("deleting the selected section clears selection")
	}
}

func TestDeleteOtherSectionKeepsSelection(t *testing.T) {
	e, _ := loadedEditor(t, []section.Section{
		{ID: "a", Type: "hero", Order: 0, Visible: true, Props: map[string]any{}},
		{ID: "b", Type: "about", Order: 1, Visible: true, Props: map[string]any{}},
	})
	if err := e.SelectSection("a"); err != nil {
		t.Fatalf("SelectSection: %v", err)
	}
	if err := e.DeleteSection("b"); err != nil {
		t.Fatalf("DeleteSection: %v", err)
	}
	if e.Selected() != "a" {
		t.Error("deleting another section must keep the selection")
	}
}

func TestSavePersistsVerbatimAndClearsDirty(t *testing.T) {
	e, fp := loadedEditor(t, nil)
	e.AddSection("hero")
	e.AddSection("about")

	if err := e.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(fp.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(fp.saved))
	}
	if !reflect.DeepEqual(fp.saved[0], e.Sections()) {
		t.Error("save must persist the working copy verbatim")
	}
	if e.Dirty() {
		t.Error("successful save clears the dirty flag")
	}
}

func TestFailedSaveLeavesStateUntouched(t *testing.T) {
	e, fp := loadedEditor(t, nil)
	e.AddSection("hero")
	before := e.Sections()
	selectedBefore := e.Selected()

	fp.saveErr = errors.New("store down")
	if err := e.Save(context.Background()); err == nil {
		t.Fatal("expected save error")
	}
	if !reflect.DeepEqual(before, e.Sections()) {
		t.Error("failed save must not mutate the working copy")
	}
	if e.Selected() != selectedBefore {
		t.Error("failed save must not change selection")
	}
	if !e.Dirty() {
		t.Error("failed save keeps the editor dirty for retry")
	}

	fp.saveErr = nil
	if err := e.Save(context.Background()); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	if e.Dirty() {
		t.Error("retry must succeed and clear dirty")
	}
}
