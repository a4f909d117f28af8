package config

const (
	HCType        = "Content-Type"
	HCacheControl = "Cache-Control"

	CTypeHTML = "text/html"
	CTypeJSON = "application/json"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
)

const (
	// CookieDraftKey identifies the browser's working draft in the
	// autosave store. The value is an opaque UUID.
	CookieDraftKey = "inkwell-draft"
)
