// templates/funcs.go
package templates

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"
)

// Funcs returns helpers available to all templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"join":  strings.Join,
		// {{ .Data | toJSON }} for data attributes read by page scripts
		"toJSON": func(v any) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(b)
		},
		"year": func() int { return time.Now().Year() },
		// <option {{ selected $.Subject "general" }}>
		"selected": func(current, option string) template.HTMLAttr {
			if current == option {
				return "selected"
			}
			return ""
		},
	}
}
