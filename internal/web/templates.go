package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/SukhanRumanov/prac3/internal/employee"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"str": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"decimalOr": func(d *decimal.Decimal) string {
		if d == nil {
			return ""
		}
		return d.String()
	},
	"selected": func(current *uint, id uint) bool {
		return current != nil && *current == id
	},
	"hasID": func(ids []uint, id uint) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	},
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
	"row": func(e employee.EmployeeResponse, l lookups) map[string]any {
		return map[string]any{"Employee": e, "Lookups": l}
	},
}

// Templates parses the embedded pages. The engine renders them with
// c.HTML by file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
