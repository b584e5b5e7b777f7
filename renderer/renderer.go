package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
)

//go:embed templates/*.md
var templates embed.FS

// CategoryRenderOptions holds configuration for rendering a category report.
type CategoryRenderOptions struct {
	SkipTransactions bool // Do not render the transactions section.
}

// categoryView is the data of the category templates.
type categoryView struct {
	cashflow.CategoryReport
	Period date.Period
}

// RenderCategory renders a category report grouped by period to a markdown string.
func RenderCategory(r cashflow.CategoryReport, period date.Period, opts CategoryRenderOptions) string {
	partials := map[string]string{
		"category_title":   "category_title.md",
		"category_periods": "category_periods.md",
	}
	// An empty file name results in an empty template.
	if opts.SkipTransactions {
		partials["category_transactions"] = ""
	} else {
		partials["category_transactions"] = "category_transactions.md"
	}
	return renderTemplate("category", "category.md", partials, categoryView{CategoryReport: r, Period: period})
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
