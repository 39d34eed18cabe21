package demo

import (
	"embed"
	"html/template"

	"github.com/bornholm/relais/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

type ViewTemplateData struct {
	ProjectPath string
	Endpoint    string
}
