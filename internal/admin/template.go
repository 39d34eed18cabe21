package admin

import (
	"embed"
	"html/template"
	"time"

	"github.com/bornholm/relais/internal/store"
	"github.com/bornholm/relais/internal/ui"
	"github.com/dustin/go-humanize"
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

// UserTemplateData contains information about a user
type UserTemplateData struct {
	ID               int64
	Provider         string
	DisplayName      string
	Email            string
	IsAdmin          bool
	IsSelf           bool
	CreatedAt        time.Time
	HumanCreatedAt   string
	HumanConnectedAt string
}

// UsersTemplateData contains the data needed to render the users page
type UsersTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	Prefix       string
	Users        []UserTemplateData
	ErrorMessage string
}

// NewUserTemplateData creates a new user template data from a store.User
func NewUserTemplateData(user *store.User) UserTemplateData {
	data := UserTemplateData{
		ID:             user.ID,
		Provider:       user.Provider,
		DisplayName:    user.DisplayName(),
		Email:          user.Email,
		IsAdmin:        user.IsAdmin,
		CreatedAt:      user.CreatedAt,
		HumanCreatedAt: humanize.Time(user.CreatedAt),
	}

	if !user.ConnectedAt.IsZero() {
		data.HumanConnectedAt = humanize.Time(user.ConnectedAt)
	}

	return data
}
