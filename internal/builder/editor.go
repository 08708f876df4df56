// Package builder implements the page-builder editing surface: a local
// working copy of one page's section list, mutated through explicit
// operations and persisted with an explicit save.
package builder

import (
	"context"
	"errors"
	"fmt"

	"folio/api/internal/section"
	"folio/api/internal/util"
)

// DefaultSectionType is used by AddSection when no type is given.
const DefaultSectionType = "hero"

var ErrSectionNotFound = errors.New("section not found")

// Persister loads and saves one page's section list. Save is an upsert:
// the whole list replaces whatever is stored for the page.
type Persister interface {
	LoadSections(ctx context.Context, page string) ([]section.Section, error)
	SaveSections(ctx context.Context, page string, sections []section.Section) error
}

// Editor holds the working copy for exactly one page. Operations apply in
// call order; there is no concurrent-edit merging, and a save is a whole
// list overwrite. Two editors of the same page can overwrite each other;
// that is an accepted limitation of the design.
type Editor struct {
	page     string
	store    Persister
	sections []section.Section
	selected string
	loaded   bool
	loadErr  error
	dirty    bool
}

func New(store Persister, page string) *Editor {
	return &Editor{page: page, store: store}
}

// Load fetches the stored section list. On failure the editor still becomes
// ready, with an empty list and the error retained, so the surface never
// hangs in a loading state.
func (e *Editor) Load(ctx context.Context) error {
	sections, err := e.store.LoadSections(ctx, e.page)
	if err != nil {
		e.sections = []section.Section{}
		e.loaded = true
		e.loadErr = err
		e.selected = ""
		e.dirty = false
		return fmt.Errorf("load sections for %s: %w", e.page, err)
	}
	e.sections = sections
	e.loaded = true
	e.loadErr = nil
	e.selected = ""
	e.dirty = false
	return nil
}

// AddSection appends a new section with default props for its type and
// selects it. Order is the current list length.
func (e *Editor) AddSection(typ string) section.Section {
	if typ == "" {
		typ = DefaultSectionType
	}
	s := section.Section{
		ID:      util.NewID("sec"),
		Type:    typ,
		Order:   len(e.sections),
		Visible: true,
		Props:   section.Defaults(typ),
	}
	e.sections = append(e.sections, s)
	e.selected = s.ID
	e.dirty = true
	return s
}

// SelectSection changes the selection without touching the list. An empty
// id clears the selection.
func (e *Editor) SelectSection(id string) error {
	if id == "" {
		e.selected = ""
		return nil
	}
	if e.indexOf(id) < 0 {
		return ErrSectionNotFound
	}
	e.selected = id
	return nil
}

// UpdateSectionProps shallow-merges partial props into the target section.
func (e *Editor) UpdateSectionProps(id string, partial map[string]any) error {
	i := e.indexOf(id)
	if i < 0 {
		return ErrSectionNotFound
	}
	merged := make(map[string]any, len(e.sections[i].Props)+len(partial))
	for key, value := range e.sections[i].Props {
		merged[key] = value
	}
	for key, value := range partial {
		merged[key] = value
	}
	e.sections[i].Props = merged
	e.dirty = true
	return nil
}

// UpdateSectionType changes only the type tag. Existing props are kept even
// if they no longer match the new type; the editing surface exposes the
// type-appropriate fields.
func (e *Editor) UpdateSectionType(id, newType string) error {
	i := e.indexOf(id)
	if i < 0 {
		return ErrSectionNotFound
	}
	e.sections[i].Type = newType
	e.dirty = true
	return nil
}

// ToggleVisible flips the section's visible flag.
func (e *Editor) ToggleVisible(id string) error {
	i := e.indexOf(id)
	if i < 0 {
		return ErrSectionNotFound
	}
	e.sections[i].Visible = !e.sections[i].Visible
	e.dirty = true
	return nil
}

// Reorder moves a section to newIndex and re-assigns every order to its
// zero-based array index. This is a full re-index, not a sparse bump.
func (e *Editor) Reorder(id string, newIndex int) error {
	i := e.indexOf(id)
	if i < 0 {
		return ErrSectionNotFound
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(e.sections)-1 {
		newIndex = len(e.sections) - 1
	}

	moved := e.sections[i]
	rest := append(e.sections[:i:i], e.sections[i+1:]...)
	out := make([]section.Section, 0, len(e.sections))
	out = append(out, rest[:newIndex]...)
	out = append(out, moved)
	out = append(out, rest[newIndex:]...)

	e.sections = reindex(out)
	e.dirty = true
	return nil
}

// DeleteSection removes a section and re-indexes the remainder. Deleting
// the selected section clears the selection.
func (e *Editor) DeleteSection(id string) error {
	i := e.indexOf(id)
	if i < 0 {
		return ErrSectionNotFound
	}
	e.sections = reindex(append(e.sections[:i:i], e.sections[i+1:]...))
	if e.selected == id {
		e.selected = ""
	}
	e.dirty = true
	return nil
}

// Save persists the working copy verbatim. On failure the working copy is
// untouched and stays dirty, so the caller can retry without losing edits.
func (e *Editor) Save(ctx context.Context) error {
	snapshot := make([]section.Section, len(e.sections))
	copy(snapshot, e.sections)
	if err := e.store.SaveSections(ctx, e.page, snapshot); err != nil {
		return fmt.Errorf("save sections for %s: %w", e.page, err)
	}
	e.dirty = false
	return nil
}

// Sections returns a copy of the working list.
func (e *Editor) Sections() []section.Section {
	out := make([]section.Section, len(e.sections))
	copy(out, e.sections)
	return out
}

func (e *Editor) Selected() string { return e.selected }
func (e *Editor) Dirty() bool      { return e.dirty }
func (e *Editor) Loaded() bool     { return e.loaded }
func (e *Editor) LoadError() error { return e.loadErr }

func (e *Editor) indexOf(id string) int {
	for i, s := range e.sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func reindex(sections []section.Section) []section.Section {
	for i := range sections {
		sections[i].Order = i
	}
	return sections
}
