package section

// Shared is the injected data the renderer threads into sections. It is
// assembled per request from the aggregated config and always wins over
// stored props of the same name.
type Shared struct {
	Profile     any
	SkillGroups any
	Projects    any
	Experience  any
	Education   any
}

// entry describes one renderable section type: which shared keys it
// consumes. A section receives only the shared keys its type declares
// here, not the whole shared set; a hero never sees projects. The table
// is fixed at process start; new marketing layouts must be added here to
// become renderable.
type entry struct {
	sharedKeys []string
}

var registry = map[string]entry{
	"hero":          {sharedKeys: []string{"profile"}},
	"about":         {sharedKeys: []string{"profile", "skillGroups"}},
	"skills":        {sharedKeys: []string{"skillGroups"}},
	"projects":      {sharedKeys: []string{"projects"}},
	"projects-grid": {sharedKeys: []string{"projects"}},
	"experience":    {sharedKeys: []string{"experience"}},
	"contact":       {sharedKeys: []string{"profile"}},
	"contact-cta":   {sharedKeys: []string{"profile"}},
	"education":     {sharedKeys: []string{"education"}},
	"custom":        {},
}

// Resolve reports whether a type is renderable and which shared keys it
// receives. Unknown types return ok=false; callers render the fallback.
func Resolve(typ string) (sharedKeys []string, ok bool) {
	e, ok := registry[typ]
	if !ok {
		return nil, false
	}
	return e.sharedKeys, true
}

// Types lists every registered section type.
func Types() []string {
	out := make([]string, 0, len(registry))
	for typ := range registry {
		out = append(out, typ)
	}
	return out
}

func (s Shared) value(key string) (any, bool) {
	switch key {
	case "profile":
		return s.Profile, s.Profile != nil
	case "skillGroups":
		return s.SkillGroups, s.SkillGroups != nil
	case "projects":
		return s.Projects, s.Projects != nil
	case "experience":
		return s.Experience, s.Experience != nil
	case "education":
		return s.Education, s.Education != nil
	default:
		return nil, false
	}
}
