package config

const (
	//? These paths must match the paths in the embed directive

	StaticLocalDir = "static"
	StaticURLPath  = "/" + StaticLocalDir + "/"

	TemplatesLocalDir = "templates"

	TemplateLayout    = "layout.html"
	TemplateIndex     = "index.html"
	TemplatePost      = "post.html"
	TemplateNotFound  = "notfound.html"
	TemplateLogin     = "login.html"
	TemplateDashboard = "dashboard.html"
	TemplateEditor    = "editor.html"
	TemplatePreview   = "preview.html"
)
