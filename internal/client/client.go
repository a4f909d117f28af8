// Package client is the single point of contact with the remote blog API.
// Every network call the application makes goes through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"inkwell/internal/model"
	"inkwell/internal/session"
)

var clientLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	clientLogger = l
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do issues a request with the session's credentials attached and maps the
// response onto the error taxonomy. A nil out skips body decoding.
func (c *Client) do(ctx context.Context, sess session.Session, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if sess != nil {
		sess.Apply(req)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer res.Body.Close()

	if sess != nil {
		sess.Capture(res)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode < 200 || res.StatusCode > 299:
		return &ServerError{Status: res.StatusCode, Body: string(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, sess session.Session, method, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s %s request: %w", method, path, err)
	}
	return c.do(ctx, sess, method, path, bytes.NewReader(data), "application/json", out)
}

// ListPosts fetches the full post collection. Listing failures are "nothing
// to show", never fatal: any error degrades to an empty slice.
func (c *Client) ListPosts(ctx context.Context, sess session.Session) []model.Post {
	var posts []model.Post
	if err := c.do(ctx, sess, http.MethodGet, "/posts", nil, "", &posts); err != nil {
		clientLogger.Warn().Err(err).Msg("Listing posts failed, returning empty list")
		return nil
	}
	return posts
}

func (c *Client) GetPost(ctx context.Context, sess session.Session, id model.PostID) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, sess, http.MethodGet, "/posts/"+string(id), nil, "", &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostBySlug resolves a missing slug to (nil, nil). The public detail
// page treats absence as an expected case, not an error.
func (c *Client) GetPostBySlug(ctx context.Context, sess session.Session, slug string) (*model.Post, error) {
	var post model.Post
	err := c.do(ctx, sess, http.MethodGet, "/posts/slug/"+slug, nil, "", &post)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, sess session.Session, draft model.Draft) (*model.Post, error) {
	var post model.Post
	if err := c.doJSON(ctx, sess, http.MethodPost, "/posts", draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, sess session.Session, id model.PostID, draft model.Draft) (*model.Post, error) {
	var post model.Post
	if err := c.doJSON(ctx, sess, http.MethodPut, "/posts/"+string(id), draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, sess session.Session, id model.PostID) error {
	return c.do(ctx, sess, http.MethodDelete, "/posts/"+string(id), nil, "", nil)
}

// UploadImage sends the file as the "image" field of a multipart form and
// returns the URL the API assigned.
func (c *Client) UploadImage(ctx context.Context, sess session.Session, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, sess, http.MethodPost, "/upload", &buf, mw.FormDataContentType(), &result); err != nil {
		return "", err
	}
	return result.URL, nil
}

// Login exchanges credentials for a session cookie. Rejected credentials
// come back as (false, nil); the error is non-nil only for unexpected
// failures such as connectivity loss, so the form can tell the two apart.
func (c *Client) Login(ctx context.Context, sess session.Session, username, password string) (bool, error) {
	payload := map[string]string{"username": username, "password": password}
	err := c.doJSON(ctx, sess, http.MethodPost, "/auth/login", payload, nil)
	if err == nil {
		return true, nil
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return false, err
	}

	clientLogger.Debug().Err(err).Msg("Login rejected")
	return false, nil
}

// Logout is best-effort: the result only says whether the server confirmed.
func (c *Client) Logout(ctx context.Context, sess session.Session) bool {
	if err := c.do(ctx, sess, http.MethodPost, "/auth/logout", nil, "", nil); err != nil {
		clientLogger.Warn().Err(err).Msg("Logout failed")
		return false
	}
	return true
}

// CheckAuth never fails: any error, 401 included, means "not authenticated".
func (c *Client) CheckAuth(ctx context.Context, sess session.Session) bool {
	var result struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := c.do(ctx, sess, http.MethodGet, "/auth/check", nil, "", &result); err != nil {
		clientLogger.Debug().Err(err).Msg("Auth check failed, treating as unauthenticated")
		return false
	}
	return result.Authenticated
}
