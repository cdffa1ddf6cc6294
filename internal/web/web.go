package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates возвращает распарсенные HTML шаблоны. Шаблоны встроены в бинарь,
// поэтому сервис не зависит от рабочей директории.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}
