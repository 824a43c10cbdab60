package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// diskStore implements ImageStore on a local filesystem content root.
type diskStore struct {
	dir    string
	logger zerolog.Logger
}

// NewDiskStore creates an ImageStore that writes assets under
// <contentRoot>/images/menuitem. The directory is created on first write.
func NewDiskStore(contentRoot string, logger zerolog.Logger) ImageStore {
	return &diskStore{
		dir:    filepath.Join(contentRoot, filepath.FromSlash(Namespace)),
		logger: logger.With().Str("store", "disk-image").Logger(),
	}
}

// Validate checks the upload against the store's acceptance policy.
func (s *diskStore) Validate(upload *Upload) error {
	return ValidateUpload(upload)
}

// Save writes the upload under a generated unique name and returns the
// asset reference. The UUID token space makes collisions a non-event, and
// the exclusive create guarantees an existing asset is never overwritten.
func (s *diskStore) Save(ctx context.Context, upload *Upload) (string, error) {
	if err := s.Validate(upload); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create asset directory")
		return "", fmt.Errorf("failed to create asset directory %s: %w", s.dir, err)
	}

	name := uuid.New().String() + filepath.Ext(upload.Filename)
	path := filepath.Join(s.dir, name)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create asset file")
		return "", fmt.Errorf("failed to create asset file: %w", err)
	}

	if _, err := io.Copy(file, upload.Content); err != nil {
		file.Close()
		// A partial write must not survive as a referenced asset.
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("path", path).Msg("failed to remove partial asset file")
		}
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write asset file")
		return "", fmt.Errorf("failed to write asset file: %w", err)
	}

	if err := file.Close(); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to close asset file")
		return "", fmt.Errorf("failed to close asset file: %w", err)
	}

	s.logger.Debug().
		Str("asset", name).
		Int64("size", upload.Size).
		Msg("asset saved")

	return name, nil
}

// Delete removes the named asset. A missing file surfaces as an error
// wrapping fs.ErrNotExist; callers orchestrate tolerance.
func (s *diskStore) Delete(ctx context.Context, ref string) error {
	if ref == "" || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return fmt.Errorf("invalid asset reference %q", ref)
	}

	path := filepath.Join(s.dir, ref)
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", ref, err)
	}

	s.logger.Debug().Str("asset", ref).Msg("asset deleted")
	return nil
}
