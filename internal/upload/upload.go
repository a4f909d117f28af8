// Package upload abstracts where cover images end up. The default backend
// delegates to the remote API; the S3 backend writes to a bucket directly.
package upload

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"inkwell/internal/client"
	"inkwell/internal/session"
)

var uploadLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	uploadLogger = l
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, sess session.Session, filename string, file io.Reader) (string, error)
}

// APIUploader forwards the file to the remote API's /upload endpoint with
// the caller's session credentials.
type APIUploader struct {
	api *client.Client
}

func NewAPIUploader(api *client.Client) *APIUploader {
	return &APIUploader{api: api}
}

func (u *APIUploader) Upload(ctx context.Context, sess session.Session, filename string, file io.Reader) (string, error) {
	return u.api.UploadImage(ctx, sess, filename, file)
}
