// Package section implements the page composition core: typed section
// records, normalization of the two historical storage shapes, the fixed
// type registry, and the dispatch renderer.
package section

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Section is one configurable block of page content.
type Section struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Order   int            `json:"order"`
	Visible bool           `json:"visible"`
	Props   map[string]any `json:"props"`
}

// Raw is a section record as stored. Two shapes exist on disk: the legacy
// enabled/config pair and the current visible/props pair. Both must remain
// readable indefinitely.
type Raw struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Order   int            `json:"order"`
	Enabled *bool          `json:"enabled,omitempty"`
	Visible *bool          `json:"visible,omitempty"`
	Config  map[string]any `json:"config,omitempty"`
	Props   map[string]any `json:"props,omitempty"`
}

// Normalize resolves a stored record into the canonical shape.
// Precedence: enabled over visible, config over props, defaults true/{}.
// When both enabled and visible are present, enabled wins even if they
// disagree; stored data of unknown provenance depends on this.
func Normalize(r Raw) Section {
	visible := true
	switch {
	case r.Enabled != nil:
		visible = *r.Enabled
	case r.Visible != nil:
		visible = *r.Visible
	}

	props := r.Props
	if r.Config != nil {
		props = r.Config
	}
	if props == nil {
		props = map[string]any{}
	}

	return Section{
		ID:      r.ID,
		Type:    r.Type,
		Order:   r.Order,
		Visible: visible,
		Props:   props,
	}
}

// DecodeList parses a stored JSON section array, accepting both shapes.
func DecodeList(data []byte) ([]Section, error) {
	if len(data) == 0 {
		return []Section{}, nil
	}
	var raws []Raw
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode section list: %w", err)
	}
	sections := make([]Section, 0, len(raws))
	for _, r := range raws {
		sections = append(sections, Normalize(r))
	}
	return sections, nil
}

// EncodeList serializes sections in the canonical visible/props shape.
func EncodeList(sections []Section) ([]byte, error) {
	if sections == nil {
		sections = []Section{}
	}
	data, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("encode section list: %w", err)
	}
	return data, nil
}

// Ordered returns a copy sorted ascending by Order. The sort is stable so
// equal orders keep their stored sequence.
func Ordered(sections []Section) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// VisibleOnly filters out hidden sections, preserving sequence.
func VisibleOnly(sections []Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}
