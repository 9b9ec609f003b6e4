package templates

import (
	"embed"
	"fmt"
	"html/template"
)

// FS holds the report page templates.
//
//go:embed *.html
var FS embed.FS

// ParseTemplates parses the named templates with the report helpers
// (add, percent) available.
func ParseTemplates(files ...string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"percent": func(part, total int) string {
			if total == 0 {
				return "0.0%"
			}
			return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
		},
	}

	return template.New("").Funcs(funcMap).ParseFS(FS, files...)
}
