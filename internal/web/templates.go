package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	pageTemplate      = template.Must(template.ParseFS(templateFS, "templates/page.html"))
	signedOutTemplate = template.Must(template.ParseFS(templateFS, "templates/signed_out.html"))
)

type noteView struct {
	ID          string
	Name        string
	Description string
	Image       string
}

type pageData struct {
	Username    string
	Name        string
	Description string
	Notes       []noteView
}
