// Package admin implements the authenticated admin area: login, dashboard,
// and the post editor. Every page is gated by an auth check against the
// remote API; unauthenticated requests are redirected to the login page.
package admin

import (
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"inkwell/internal/autosave"
	"inkwell/internal/client"
	"inkwell/internal/config"
	"inkwell/internal/model"
	"inkwell/internal/render"
	"inkwell/internal/routes"
	"inkwell/internal/session"
	"inkwell/internal/upload"
	"inkwell/internal/util"
)

var adminLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	adminLogger = l
}

type Handler struct {
	api      *client.Client
	drafts   autosave.Store // nil when autosave is disabled
	uploader upload.Uploader

	fs fs.FS
}

func NewHandler(api *client.Client, drafts autosave.Store, uploader upload.Uploader, fs fs.FS) *Handler {
	return &Handler{
		api:      api,
		drafts:   drafts,
		uploader: uploader,
		fs:       fs,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc(routes.AdminLogin, h.ServeLogin)
	mux.HandleFunc(routes.AdminLogout, h.HandleLogout)
	mux.HandleFunc(routes.AdminDashboard, h.ServeDashboard)
	mux.HandleFunc(routes.AdminNewPost, h.ServeNewPost)
	mux.HandleFunc(routes.AdminEditPost, h.ServeEditPost)
	mux.HandleFunc(routes.AdminPreview, h.ServePreview)
	mux.HandleFunc(routes.AdminSavePost, h.HandleSave)
	mux.HandleFunc(routes.AdminDeletePost, h.HandleDelete)
	mux.HandleFunc(routes.AdminAutosave, h.HandleAutosave)
	mux.HandleFunc(routes.AdminUpload, h.HandleUpload)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, page string, data any) {
	tmpl, err := template.ParseFS(h.fs,
		config.TemplatesLocalDir+"/"+config.TemplateLayout,
		config.TemplatesLocalDir+"/"+page,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		adminLogger.Error().Err(err).Str("page", page).Msg("Error rendering template")
	}
}

// requireAuth resolves the per-request auth state: authenticated requests
// get a session relay back, everything else is redirected to the login
// page. Only CheckAuth itself never redirects, to avoid loops.
func (h *Handler) requireAuth(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess := session.NewRelay(w, r)
	if !h.api.CheckAuth(r.Context(), sess) {
		http.Redirect(w, r, routes.AdminLogin, http.StatusFound)
		return nil, false
	}
	return sess, true
}

// redirectIfUnauthorized handles the cross-cutting contract: a 401 from any
// error-surfacing operation bounces the browser to the login page.
func (h *Handler) redirectIfUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, client.ErrUnauthorized) {
		http.Redirect(w, r, routes.AdminLogin, http.StatusFound)
		return true
	}
	return false
}

type loginData struct {
	*model.PageData
	Username string
	Error    string
}

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderPage(w, r, config.TemplateLogin, loginData{PageData: model.NewPageData(r)})
	case http.MethodPost:
		h.handleLogin(w, r)
	default:
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	data := loginData{PageData: model.NewPageData(r), Username: username}

	if username == "" || password == "" {
		data.Error = "Username and password are required"
		h.renderPage(w, r, config.TemplateLogin, data)
		return
	}

	sess := session.NewRelay(w, r)
	ok, err := h.api.Login(r.Context(), sess, username, password)
	if err != nil {
		adminLogger.Error().Err(err).Msg("Login request failed")
		data.Error = "An error occurred. Please try again."
		h.renderPage(w, r, config.TemplateLogin, data)
		return
	}
	if !ok {
		data.Error = "Invalid credentials. Please check your username and password."
		h.renderPage(w, r, config.TemplateLogin, data)
		return
	}

	http.Redirect(w, r, routes.AdminDashboard, http.StatusSeeOther)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	h.api.Logout(r.Context(), session.NewRelay(w, r))
	http.Redirect(w, r, routes.Root, http.StatusSeeOther)
}

type dashboardData struct {
	*model.PageData
	Posts []model.Post
	Error string
}

func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	posts := h.api.ListPosts(r.Context(), sess)
	h.renderPage(w, r, config.TemplateDashboard, dashboardData{
		PageData: model.NewPageData(r),
		Posts:    posts,
	})
}

// HandleDelete is a fetch endpoint: the dashboard's script confirms the
// deletion, disables the row while the request is in flight, and removes
// the row itself on 204 without refetching the list.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	sess := session.NewRelay(w, r)
	if err := h.api.DeletePost(r.Context(), sess, model.PostID(id)); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			// The dashboard script redirects to login on 401.
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		adminLogger.Error().Err(err).Str("post_id", id).Msg("Error deleting post")
		w.Header().Set(config.HCType, config.CTypeJSON)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to delete post. Please try again."})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type editorData struct {
	*model.PageData
	Draft    model.Draft
	PostID   string
	IsNew    bool
	Autosave bool
	Error    string
}

func (h *Handler) ServeNewPost(w http.ResponseWriter, r *http.Request) {
	_, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	data := editorData{
		PageData: model.NewPageData(r),
		IsNew:    true,
		Autosave: h.drafts != nil,
	}

	if h.drafts != nil {
		draftID := h.ensureDraftCookie(w, r)
		if stored, err := h.drafts.Load(autosave.Key(draftID)); err != nil {
			adminLogger.Warn().Err(err).Msg("Error loading autosaved draft")
		} else if stored != nil {
			data.Draft = *stored
		}
	}

	h.renderPage(w, r, config.TemplateEditor, data)
}

func (h *Handler) ServeEditPost(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	post, err := h.api.GetPost(r.Context(), sess, model.PostID(id))
	if err != nil {
		if h.redirectIfUnauthorized(w, r, err) {
			return
		}
		if errors.Is(err, client.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			h.renderPage(w, r, config.TemplateNotFound, struct {
				*model.PageData
				Message string
			}{model.NewPageData(r), "The post you're looking for doesn't exist or has been deleted."})
			return
		}

		adminLogger.Error().Err(err).Str("post_id", id).Msg("Error fetching post")
		h.renderPage(w, r, config.TemplateEditor, editorData{
			PageData: model.NewPageData(r),
			PostID:   id,
			Error:    "Failed to fetch post. Please try again.",
		})
		return
	}

	h.renderPage(w, r, config.TemplateEditor, editorData{
		PageData: model.NewPageData(r),
		Draft:    model.DraftOf(post),
		PostID:   string(post.ID),
		Autosave: false, // autosave recovery only applies to new drafts
	})
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAuth(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	id := r.FormValue("id")
	draft := model.Draft{
		Title:      r.FormValue("title"),
		Slug:       r.FormValue("slug"),
		Content:    r.FormValue("content"),
		Published:  r.FormValue("published") == "on",
		CoverImage: r.FormValue("coverImage"),
	}

	// Slug auto-derivation applies only to new posts whose slug was left
	// untouched; a user-entered or pre-existing slug is never overwritten.
	if id == "" && draft.Slug == "" && draft.Title != "" {
		draft.Slug = util.Slugify(draft.Title)
	}

	data := editorData{
		PageData: model.NewPageData(r),
		Draft:    draft,
		PostID:   id,
		IsNew:    id == "",
		Autosave: h.drafts != nil && id == "",
	}

	// Local validation happens before any network call.
	if err := draft.Validate(); err != nil {
		data.Error = "Title and content are required"
		h.renderPage(w, r, config.TemplateEditor, data)
		return
	}

	var err error
	if id == "" {
		_, err = h.api.CreatePost(r.Context(), sess, draft)
	} else {
		_, err = h.api.UpdatePost(r.Context(), sess, model.PostID(id), draft)
	}
	if err != nil {
		if h.redirectIfUnauthorized(w, r, err) {
			return
		}
		adminLogger.Error().Err(err).Str("post_id", id).Msg("Error saving post")
		data.Error = "Failed to save post. Please try again."
		h.renderPage(w, r, config.TemplateEditor, data)
		return
	}

	// The recovery copy is only cleared once the save went through.
	if h.drafts != nil {
		if cookie, cerr := r.Cookie(config.CookieDraftKey); cerr == nil {
			if cerr := h.drafts.Clear(autosave.Key(cookie.Value)); cerr != nil {
				adminLogger.Warn().Err(cerr).Msg("Error clearing autosaved draft")
			}
		}
	}

	http.Redirect(w, r, routes.AdminDashboard, http.StatusSeeOther)
}

// HandleAutosave mirrors editor field changes into the draft store. It is
// called by the editor script on every change, so it stays cheap and does
// not round-trip to the API for an auth check.
func (h *Handler) HandleAutosave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}
	if h.drafts == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	cookie, err := r.Cookie(config.CookieDraftKey)
	if err != nil || cookie.Value == "" {
		http.Error(w, "Draft cookie required", http.StatusBadRequest)
		return
	}

	var draft model.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.drafts.Save(autosave.Key(cookie.Value), draft); err != nil {
		adminLogger.Error().Err(err).Msg("Error autosaving draft")
		http.Error(w, "Failed to save draft", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpload is the editor's cover upload endpoint. The response is JSON
// so the editor script can swap the cover in place while showing its busy
// state.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	sess := session.NewRelay(w, r)
	if !h.api.CheckAuth(r.Context(), sess) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), sess, header.Filename, file)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		adminLogger.Error().Err(err).Str("filename", header.Filename).Msg("Error uploading image")
		w.Header().Set(config.HCType, config.CTypeJSON)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to upload image. Please try again."})
		return
	}

	w.Header().Set(config.HCType, config.CTypeJSON)
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}

type previewData struct {
	*model.PageData
	Draft   *model.Draft
	Content template.HTML
	HasData bool
}

// ServePreview renders a draft passed as URL-encoded JSON in the "data"
// query parameter. Nothing is persisted; the draft exists only in the URL.
func (h *Handler) ServePreview(w http.ResponseWriter, r *http.Request) {
	data := previewData{PageData: model.NewPageData(r)}

	draft, err := model.DecodePreview(r.URL.Query().Get("data"))
	if err != nil {
		adminLogger.Debug().Err(err).Msg("No usable preview data")
		h.renderPage(w, r, config.TemplatePreview, data)
		return
	}

	data.Draft = draft
	data.HasData = true
	data.Content = render.ContentHTML(draft.Content)
	h.renderPage(w, r, config.TemplatePreview, data)
}

func (h *Handler) ensureDraftCookie(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(config.CookieDraftKey); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:  config.CookieDraftKey,
		Value: id,
		Path:  "/",
	})
	return id
}
