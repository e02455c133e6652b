package handlers

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData is shared by every page template.
type pageData struct {
	Title    string
	Username string
	Error    string
	Message  string
}
