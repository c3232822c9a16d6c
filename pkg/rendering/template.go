// Package rendering provides template rendering of annotation script reports
package rendering

import (
	"bytes"
	"fmt"
	"slices"
	"sort"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/clonobrowser/annotator/pkg/compiler"
)

// DefaultReportTemplate lists steps in the order an engine tries them
const DefaultReportTemplate = `{{ .title | default "untitled" }} ({{ .mode }})
{{- range .steps }}
{{ printf "%2d" .priority }}. {{ .label | quote }}: {{ .condition }}
{{- if not .editable }} [not editable]{{ end }}
{{- if .twoAxis }} [sample-level]{{ end }}
{{- end }}
{{ if .valid }}valid{{ else }}INVALID{{ end }}: {{ .reason }}
`

// TemplateEngine provides template rendering with Sprig functions
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a new template engine with Sprig functions
func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{
		funcMap: sprig.TxtFuncMap(),
	}
}

// Render renders a template with the given variables
func (t *TemplateEngine) Render(content string, variables map[string]interface{}) (string, error) {
	tmpl, err := template.New("report").Funcs(t.funcMap).Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// RenderReport renders report with content, or DefaultReportTemplate when
// content is empty
func (t *TemplateEngine) RenderReport(content string, report *compiler.Report) (string, error) {
	if content == "" {
		content = DefaultReportTemplate
	}

	return t.Render(content, BuildVariables(report))
}

// BuildVariables builds template variables from a report. Steps are ordered
// by priority.
func BuildVariables(report *compiler.Report) map[string]interface{} {
	ordered := slices.Clone(report.Steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	steps := make([]interface{}, 0, len(ordered))

	for _, step := range ordered {
		columns := make([]interface{}, 0, len(step.Columns))
		for _, c := range step.Columns {
			columns = append(columns, c.String())
		}

		steps = append(steps, map[string]interface{}{
			"index":     step.Index,
			"priority":  step.Priority,
			"label":     step.Label,
			"condition": step.Condition,
			"editable":  step.Editable,
			"twoAxis":   step.TwoAxis,
			"columns":   columns,
		})
	}

	return map[string]interface{}{
		"title":  report.Title,
		"mode":   string(report.Mode),
		"valid":  report.Valid,
		"reason": report.Reason,
		"steps":  steps,
	}
}
