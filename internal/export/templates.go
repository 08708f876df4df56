package export

import (
	"bytes"
	"html/template"
	"strings"
)

var resumeTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	"lower": strings.ToLower,
	"join":  strings.Join,
}).Parse(resumeHTML))

// TemplateData holds data for résumé template rendering.
type TemplateData struct {
	FullName   string
	Headline   string
	Bio        string
	Email      string
	Phone      string
	Location   string
	Socials    map[string]string
	Skills     []TemplateSkillGroup
	Experience []TemplateExperience
	Education  []TemplateEducation
}

// TemplateSkillGroup is one skills category row.
type TemplateSkillGroup struct {
	Category string
	Names    []string
}

// TemplateExperience is one employment entry.
type TemplateExperience struct {
	Company    string
	Role       string
	Location   string
	Period     string
	Summary    string
	Highlights []string
}

// TemplateEducation is one education entry.
type TemplateEducation struct {
	School string
	Degree string
	Field  string
	Period string
	Notes  string
}

// RenderResumeHTML renders the résumé template with provided data.
func RenderResumeHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const resumeHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.FullName}}</title>
  <style>
    body { font-family: Georgia, serif; line-height: 1.5; max-width: 760px; margin: 0 auto; color: #1a1a1a; }
    h1 { margin-bottom: 0; }
    h2 { border-bottom: 1px solid #999; padding-bottom: 0.2rem; margin-top: 1.6rem; }
    .headline { color: #444; font-size: 1.1em; margin-top: 0.2rem; }
    .contact { color: #666; font-size: 0.9em; margin: 0.6rem 0 1.2rem; }
    .entry { margin-bottom: 1rem; }
    .entry-head { display: flex; justify-content: space-between; }
    .period { color: #666; font-size: 0.9em; }
    .role { font-style: italic; }
    ul { margin: 0.3rem 0 0 1.2rem; padding: 0; }
    .skills td { padding: 0.1rem 0.8rem 0.1rem 0; vertical-align: top; }
    .skills .cat { font-weight: bold; white-space: nowrap; }
  </style>
</head>
<body>
  <h1>{{.FullName}}</h1>
  {{if .Headline}}<div class="headline">{{.Headline}}</div>{{end}}
  <div class="contact">
    {{.Email}}{{if .Phone}} &middot; {{.Phone}}{{end}}{{if .Location}} &middot; {{.Location}}{{end}}
    {{range $name, $url := .Socials}} &middot; {{$name}}: {{$url}}{{end}}
  </div>
  {{if .Bio}}<p>{{.Bio}}</p>{{end}}

  {{if .Experience}}
  <h2>Experience</h2>
  {{range .Experience}}
  <div class="entry">
    <div class="entry-head"><strong>{{.Company}}</strong><span class="period">{{.Period}}</span></div>
    <div class="role">{{.Role}}{{if .Location}} &mdash; {{.Location}}{{end}}</div>
    {{if .Summary}}<div>{{.Summary}}</div>{{end}}
    {{if .Highlights}}<ul>{{range .Highlights}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </div>
  {{end}}
  {{end}}

  {{if .Skills}}
  <h2>Skills</h2>
  <table class="skills">
  {{range .Skills}}<tr><td class="cat">{{.Category}}</td><td>{{join .Names ", "}}</td></tr>{{end}}
  </table>
  {{end}}

  {{if .Education}}
  <h2>Education</h2>
  {{range .Education}}
  <div class="entry">
    <div class="entry-head"><strong>{{.School}}</strong><span class="period">{{.Period}}</span></div>
    <div class="role">{{.Degree}}{{if .Field}}, {{.Field}}{{end}}</div>
    {{if .Notes}}<div>{{.Notes}}</div>{{end}}
  </div>
  {{end}}
  {{end}}
</body>
</html>`
