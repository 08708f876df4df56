package section

import "fmt"

// Rendered is one resolved section payload, ready for the page to consume.
type Rendered struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Order    int            `json:"order"`
	Props    map[string]any `json:"props"`
	Fallback bool           `json:"fallback,omitempty"`
	Message  string         `json:"message,omitempty"`
}

// Render resolves one section against the registry. Stored props come
// first, injected shared data overrides keys of the same name, and the
// preview flag is always threaded through.
func Render(s Section, shared Shared, preview bool) Rendered {
	sharedKeys, ok := Resolve(s.Type)
	if !ok {
		return Rendered{
			ID:       s.ID,
			Type:     s.Type,
			Order:    s.Order,
			Props:    map[string]any{"preview": preview},
			Fallback: true,
			Message:  fmt.Sprintf("unknown section type %q", s.Type),
		}
	}

	merged := make(map[string]any, len(s.Props)+len(sharedKeys)+1)
	for key, value := range s.Props {
		merged[key] = value
	}
	for _, key := range sharedKeys {
		if value, present := shared.value(key); present {
			merged[key] = value
		}
	}
	merged["preview"] = preview

	return Rendered{
		ID:    s.ID,
		Type:  s.Type,
		Order: s.Order,
		Props: merged,
	}
}

// RenderPage sorts by order, drops hidden sections, and renders the rest.
// A section with an unknown type yields a labeled fallback and never
// suppresses its siblings.
func RenderPage(sections []Section, shared Shared, preview bool) []Rendered {
	visible := VisibleOnly(Ordered(sections))
	out := make([]Rendered, 0, len(visible))
	for _, s := range visible {
		out = append(out, Render(s, shared, preview))
	}
	return out
}
