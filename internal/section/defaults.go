package section

// Defaults returns the starting props for a newly added section of the
// given type. Unknown types start empty.
func Defaults(typ string) map[string]any {
	switch typ {
	case "hero":
		return map[string]any{
			"headline":    "Hi, I build things",
			"subheadline": "A short introduction goes here",
			"ctaLabel":    "See my work",
			"ctaTarget":   "#projects",
		}
	case "about":
		return map[string]any{
			"heading": "About me",
			"body":    "",
		}
	case "skills":
		return map[string]any{
			"heading":         "Skills",
			"showProficiency": true,
			"groupByCategory": true,
		}
	case "projects":
		return map[string]any{
			"heading":      "Featured projects",
			"featuredOnly": true,
			"limit":        3,
		}
	case "projects-grid":
		return map[string]any{
			"heading": "All projects",
			"columns": 3,
		}
	case "experience":
		return map[string]any{
			"heading": "Experience",
		}
	case "education":
		return map[string]any{
			"heading": "Education",
		}
	case "contact":
		return map[string]any{
			"heading":  "Get in touch",
			"showForm": true,
		}
	case "contact-cta":
		return map[string]any{
			"headline":  "Have a project in mind?",
			"ctaLabel":  "Contact me",
			"ctaTarget": "#contact",
		}
	case "custom":
		return map[string]any{
			"html": "",
		}
	default:
		return map[string]any{}
	}
}
