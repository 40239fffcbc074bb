package tui

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// SummaryData is rendered after the manifest has been written.
type SummaryData struct {
	Path         string
	Name         string
	Mode         string
	Core         string
	WebDir       string
	Stability    string
	Require      map[string]string
	RequireDev   map[string]string
	Repositories []string
}

const summaryTemplate = `{{ .Header }}

  Package        {{ .Data.Name }}
  Drupal         {{ .Data.Core }} ({{ .Data.Mode | title }})
  Web root       {{ .Data.WebDir }}/
  Stability      {{ .Data.Stability | default "dev" }}
  Repositories   {{ .Data.Repositories | join ", " }}

  require ({{ len .Data.Require }})
{{- range $name := keys .Require | sortAlpha }}
    {{ $name | printf "%-44s" }} {{ index $.Require $name }}
{{- end }}
{{- if .Data.RequireDev }}

  require-dev ({{ len .Data.RequireDev }})
{{- range $name := keys .RequireDev | sortAlpha }}
    {{ $name | printf "%-44s" }} {{ index $.RequireDev $name }}
{{- end }}
{{- end }}

{{ .Hint }}
`

var summaryTmpl = template.Must(template.New("summary").Funcs(sprig.TxtFuncMap()).Parse(summaryTemplate))

// RenderSummary renders a summary of the written manifest.
func RenderSummary(data SummaryData) (string, error) {
	var buf bytes.Buffer
	err := summaryTmpl.Execute(&buf, map[string]interface{}{
		"Header":     SuccessStyle.Render(fmt.Sprintf("✓ Wrote %s", data.Path)),
		"Hint":       HelpStyle.Render("Run `composer install` to install the dependencies."),
		"Data":       data,
		"Require":    toDict(data.Require),
		"RequireDev": toDict(data.RequireDev),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}

	return buf.String(), nil
}

func toDict(m map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
