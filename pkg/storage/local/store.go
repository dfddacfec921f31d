// Package local keeps uploaded images on disk and serves them under a
// public URL prefix.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/logger"
)

var (
	ErrTooLarge        = errors.New("upload exceeds size limit")
	ErrUnsupportedType = errors.New("upload must be a jpeg or png image")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Store writes images below Dir and builds URLs under PublicPrefix.
type Store struct {
	dir          string
	publicPrefix string
	maxBytes     int64
	logg         *logger.Logger
}

func New(cfg config.StorageConfig, logg *logger.Logger) (*Store, error) {
	if cfg.UploadDir == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		dir:          cfg.UploadDir,
		publicPrefix: "/" + strings.Trim(cfg.PublicPrefix, "/"),
		maxBytes:     cfg.MaxUploadBytes(),
		logg:         logg,
	}, nil
}

// Dir is the root directory served under PublicPrefix.
func (s *Store) Dir() string { return s.dir }

// PublicPrefix is the URL path images are served from.
func (s *Store) PublicPrefix() string { return s.publicPrefix }

// SaveImage stores a JPEG or PNG under folder and returns its public URL.
// The content type is sniffed from the bytes, never trusted from the client.
func (s *Store) SaveImage(ctx context.Context, folder string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}
	mt := mimetype.Detect(data)
	ext, ok := allowedTypes[mt.String()]
	if !ok {
		return "", fmt.Errorf("%w: got %s", ErrUnsupportedType, mt.String())
	}

	folder = strings.Trim(filepath.Clean("/"+folder), "/")
	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(target, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	url := path.Join(s.publicPrefix, folder, name)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"url": url, "bytes": len(data), "mime": mt.String()}), "upload.saved")
	return url, nil
}

// DeleteImage removes a file previously returned by SaveImage. URLs outside
// PublicPrefix are rejected and a missing file is not an error.
func (s *Store) DeleteImage(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.publicPrefix+"/")
	if !ok || rel == "" {
		return fmt.Errorf("url %q is not under %s", url, s.publicPrefix)
	}
	rel = strings.Trim(filepath.Clean("/"+rel), "/")
	if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel))); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	s.logg.Info(s.logg.WithField(ctx, "url", url), "upload.deleted")
	return nil
}
