package mqtt

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

type StatusTemplateData struct {
	Status         Status
	SocketEndpoint string
}

type SettingsTemplateData struct {
	Settings Settings
	CanEdit  bool
	Error    string
	Saved    bool
}
