// Package routes defines HTTP route constants for the application.
package routes

const (
	// Public
	Root = "/"
	Blog = "/blog/{slug}"

	// Admin pages
	AdminLogin     = "/admin/login"
	AdminDashboard = "/admin/dashboard"
	AdminNewPost   = "/admin/posts/new"
	AdminEditPost  = "/admin/posts/edit/{id}"
	AdminPreview   = "/admin/posts/preview"

	// Admin form/JS endpoints
	AdminLogout     = "/admin/logout"
	AdminSavePost   = "/admin/posts/save"
	AdminDeletePost = "/admin/posts/delete/{id}"
	AdminAutosave   = "/admin/posts/autosave"
	AdminUpload     = "/admin/upload"
)
