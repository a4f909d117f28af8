package main

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"inkwell/internal/admin"
	"inkwell/internal/autosave"
	"inkwell/internal/client"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/logger"
	"inkwell/internal/model"
	"inkwell/internal/render"
	"inkwell/internal/routes"
	"inkwell/internal/session"
	"inkwell/internal/upload"
	"inkwell/internal/util/compression"
)

//go:embed static/* templates/*
var content embed.FS

var apiClient *client.Client

var log zerolog.Logger

func main() {
	if err := godotenv.Load(); err != nil {
		// Not an error: the .env file is optional.
		os.Stderr.WriteString("No .env file loaded\n")
	}

	log = logger.New("info")
	config.SetLogger(log)

	configPath := os.Getenv("INKWELL_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := config.LoadConfig(configPath); err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	cfg := config.AppConfig

	if v := os.Getenv("API_URL"); v != "" {
		cfg.API.BaseURL = v
	}

	// Re-level the logger now that the config told us what it wants, and
	// hand it to every package that logs.
	log = logger.New(cfg.Logging.Level)
	config.SetLogger(log)
	client.SetLogger(log.With().Str("component", "client").Logger())
	admin.SetLogger(log.With().Str("component", "admin").Logger())
	render.SetLogger(log.With().Str("component", "render").Logger())
	db.SetLogger(log.With().Str("component", "db").Logger())
	autosave.SetLogger(log.With().Str("component", "autosave").Logger())
	upload.SetLogger(log.With().Str("component", "upload").Logger())

	apiClient = client.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	drafts := buildDraftStore(cfg)
	uploader := buildUploader(cfg)

	adminHandler := admin.NewHandler(apiClient, drafts, uploader, content)

	mux := http.NewServeMux()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCType, "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("User-agent: *\nDisallow: /admin/\n"))
	})

	static, _ := fs.Sub(content, config.StaticLocalDir)
	staticServer := http.StripPrefix(config.StaticURLPath, http.FileServer(http.FS(static)))
	mux.HandleFunc(config.StaticURLPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "public, max-age=3600")
		staticServer.ServeHTTP(w, r)
	})

	mux.HandleFunc(routes.Blog, serveBlogPost)
	mux.HandleFunc(routes.Root, serveIndex)

	adminHandler.Register(mux)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Str("api", cfg.API.BaseURL).Msg("Starting server")
	log.Fatal().Err(http.ListenAndServe(addr, secureHeaders(mux.ServeHTTP))).Msg("Server stopped")
}

func buildDraftStore(cfg *config.Config) autosave.Store {
	if !cfg.Autosave.Enabled {
		return nil
	}

	var compressor compression.Compressor = compression.ZstdCompressor{}
	if cfg.Autosave.Compression == "gzip" {
		compressor = compression.GzipCompressor{}
	}

	switch cfg.Autosave.Backend {
	case "memory":
		return autosave.NewMemoryStore()
	default:
		database := db.NewSQLite(cfg.Autosave.Path)
		if err := database.Init(); err != nil {
			log.Fatal().Err(err).Msg("Error initializing draft database")
		}
		return autosave.NewSQLiteStore(database, compressor)
	}
}

func buildUploader(cfg *config.Config) upload.Uploader {
	if cfg.Upload.Backend == "s3" {
		uploader, err := upload.NewS3Uploader(
			os.Getenv("S3_ACCESS_KEY_ID"),
			os.Getenv("S3_ACCESS_KEY_SECRET"),
			cfg.Upload.S3.Endpoint,
			cfg.Upload.S3.Region,
			cfg.Upload.S3.Bucket,
			cfg.Upload.S3.PublicBaseURL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing S3 uploader")
		}
		return uploader
	}
	return upload.NewAPIUploader(apiClient)
}

func secureHeaders(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		h(w, r)
	}
}

func renderPage(w http.ResponseWriter, r *http.Request, page string, data any) {
	tmpl, err := template.ParseFS(content,
		config.TemplatesLocalDir+"/"+config.TemplateLayout,
		config.TemplatesLocalDir+"/"+page,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("Error rendering template")
	}
}

// serveIndex renders the public listing. Filtering and sorting are pure:
// both are re-derived from the fetched collection per request, no server
// round-trip beyond the single list call.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != routes.Root {
		http.NotFound(w, r)
		return
	}

	posts := apiClient.ListPosts(r.Context(), session.NewRelay(w, r))

	query := r.URL.Query().Get("q")
	order := r.URL.Query().Get("sort")

	visible := model.SortPosts(model.FilterPosts(posts, query), order)

	data := struct {
		*model.PageData
		Posts []model.Post
		Query string
		Sort  string
	}{
		PageData: model.NewPageData(r),
		Posts:    visible,
		Query:    query,
		Sort:     order,
	}

	renderPage(w, r, config.TemplateIndex, data)
}

func serveBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		http.NotFound(w, r)
		return
	}

	post, err := apiClient.GetPostBySlug(r.Context(), session.NewRelay(w, r), slug)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("Error fetching post")
		http.Error(w, "Failed to fetch post", http.StatusBadGateway)
		return
	}

	// A missing slug is expected, not an error.
	if post == nil {
		w.WriteHeader(http.StatusNotFound)
		renderPage(w, r, config.TemplateNotFound, struct {
			*model.PageData
			Message string
		}{model.NewPageData(r), "The post you're looking for doesn't exist."})
		return
	}

	data := struct {
		*model.PageData
		Post    *model.Post
		Content template.HTML
	}{
		PageData: model.NewPageData(r),
		Post:     post,
		Content:  render.ContentHTML(post.Content),
	}

	renderPage(w, r, config.TemplatePost, data)
}
