package storage

import (
	"context"
	"io"
	"path/filepath"

	"redmango/internal/model"
)

// Namespace is the directory under the content root (or the key prefix in
// S3) where all menu item images live.
const Namespace = "images/menuitem"

// MaxUploadBytes is the upload size ceiling for menu item images.
const MaxUploadBytes = 1 * 1024 * 1024

// allowedExtensions are matched against the extension exactly as the client
// provided it. ".JPG" is not ".jpg".
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Upload is a client-submitted image file pending validation and storage.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ImageStore manages the binary image assets referenced by menu items.
// Save never overwrites an existing asset; generated names are unique.
// Delete reports a missing asset as an error wrapping fs.ErrNotExist so
// callers decide whether best-effort cleanup tolerates it.
type ImageStore interface {
	Validate(upload *Upload) error
	Save(ctx context.Context, upload *Upload) (string, error)
	Delete(ctx context.Context, ref string) error
}

// ValidateUpload checks an upload against the store's acceptance policy:
// a payload must be present, at most MaxUploadBytes, and carry an allowed
// extension. No file or record is touched by validation.
func ValidateUpload(upload *Upload) error {
	if upload == nil || upload.Content == nil || upload.Size == 0 {
		return model.ErrMissingFile
	}

	if upload.Size > MaxUploadBytes {
		return model.ErrFileTooLarge
	}

	ext := filepath.Ext(upload.Filename)
	if _, ok := allowedExtensions[ext]; !ok {
		return model.ErrUnsupportedExtension
	}

	return nil
}
