package ui

type TabTemplateData struct {
	Label    string
	Path     string
	Selected bool
	Disabled bool
}

type TabStripTemplateData struct {
	Selected string
	Tabs     []TabTemplateData
}
