package model

import (
	"net/http"

	"inkwell/internal/config"
)

type PageData struct {
	SiteName string
	PageURL  string
}

func NewPageData(r *http.Request) *PageData {
	name := "Inkwell"
	if config.AppConfig != nil {
		name = config.AppConfig.Site.Name
	}
	return &PageData{
		SiteName: name,
		PageURL:  r.URL.Path,
	}
}
