package setup

import (
	"net/http"

	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/mqtt"
	"github.com/bornholm/relais/internal/tabs"
	"github.com/bornholm/relais/internal/ui"
)

func newNavbar(demoPath string) tabs.NavbarFunc {
	return func(r *http.Request) ui.NavbarTemplateData {
		data := tabs.DefaultNavbar(r)

		items := []ui.NavbarItem{
			{Label: "Demo Project", URL: demoPath, Icon: "fa-lightbulb", Position: "left"},
			{Label: "MQTT", URL: mqtt.PathStatus, Icon: "fa-tower-broadcast", Position: "left"},
		}

		if authz.IsAdmin(r.Context()) {
			items = append(items, ui.NavbarItem{Label: "Users", URL: "/admin/users", Icon: "fa-users", Position: "left"})
		}

		data.NavbarItems = append(items, data.NavbarItems...)

		return data
	}
}
