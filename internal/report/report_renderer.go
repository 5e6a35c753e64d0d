package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"repo-summarizer/internal/engine"
	"repo-summarizer/internal/llm"
)

//go:embed report_template.md
var reportTemplateText string

var reportTemplate *template.Template

func init() {
	reportTemplate = template.Must(
		template.New("report").Funcs(templateFuncs()).Parse(reportTemplateText),
	)
}

// templateFuncs returns all custom template functions
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": formatDate,
	}
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// Metadata contains metadata for template replacement
type Metadata struct {
	ModelID        string
	GenerationTime time.Time
}

// TemplateData holds all data needed for template rendering
type TemplateData struct {
	RepoName string
	Summary  *llm.Summary
	Blob     *engine.Blob
	Metadata *Metadata
}

// Generate renders the final markdown report from the parsed summary and the
// context blob that produced it
func Generate(repoName string, summary *llm.Summary, blob *engine.Blob, meta *Metadata) (string, error) {
	data := &TemplateData{
		RepoName: repoName,
		Summary:  summary,
		Blob:     blob,
		Metadata: meta,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}

	return buf.String(), nil
}
