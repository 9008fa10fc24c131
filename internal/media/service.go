package media

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/shared"
)

// MaxUploadSize caps image uploads at 5 MB.
const MaxUploadSize = 5 << 20

// URLPrefix is where stored images are served from.
const URLPrefix = "/uploads/images/"

var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// ErrUnsupportedType rejects non-image uploads.
var ErrUnsupportedType = fmt.Errorf("media: only jpg, png, gif and webp images are allowed")

// ErrTooLarge rejects uploads over MaxUploadSize.
var ErrTooLarge = fmt.Errorf("media: file exceeds the 5 MB limit")

// ActivityRecorder appends activity log entries.
type ActivityRecorder interface {
	Record(ctx context.Context, entry audit.Entry) (string, error)
}

// Service is the disk-backed media library.
type Service struct {
	dir      string
	recorder ActivityRecorder
}

// NewService ensures the upload directory exists and builds a Service.
func NewService(dir string, recorder ActivityRecorder) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create upload dir: %w", err)
	}
	return &Service{dir: dir, recorder: recorder}, nil
}

// SaveImage validates and stores an uploaded image under a fresh uuid name.
func (s *Service) SaveImage(ctx context.Context, actor *auth.Principal, ip, originalName string, data []byte) (Uploaded, error) {
	if len(data) == 0 {
		return Uploaded{}, fmt.Errorf("media: empty upload")
	}
	if len(data) > MaxUploadSize {
		return Uploaded{}, ErrTooLarge
	}
	ext, ok := extByMIME[http.DetectContentType(data)]
	if !ok {
		return Uploaded{}, ErrUnsupportedType
	}
	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return Uploaded{}, fmt.Errorf("media: store image: %w", err)
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "media.upload", TargetType: "media", TargetID: filename,
		Details: "uploaded image: " + originalName,
	})
	return Uploaded{
		URL:          URLPrefix + filename,
		Filename:     filename,
		OriginalName: originalName,
		Size:         int64(len(data)),
	}, nil
}

// ListImages returns the library contents, newest first.
func (s *Service) ListImages(ctx context.Context) ([]Image, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []Image{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("media: read library: %w", err)
	}
	images := make([]Image, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, Image{
			Filename:   entry.Name(),
			URL:        URLPrefix + entry.Name(),
			Size:       info.Size(),
			UploadedAt: info.ModTime().UTC(),
		})
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].UploadedAt.After(images[j].UploadedAt)
	})
	return images, nil
}

// DeleteImage removes one file. The filename must be a bare name; anything
// that could escape the library directory is rejected.
func (s *Service) DeleteImage(ctx context.Context, actor *auth.Principal, ip, filename string) error {
	if filename == "" || strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("%w: invalid filename", shared.ErrNotFound)
	}
	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return shared.ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("media: delete image: %w", err)
	}
	s.record(ctx, actor, ip, audit.Entry{
		Action: "media.delete", TargetType: "media", TargetID: filename,
		Details: "deleted image: " + filename,
	})
	return nil
}

// Dir returns the library directory, used to mount the static file server.
func (s *Service) Dir() string {
	return s.dir
}

// ScanOrphans reports files that do not look like library images, used by the
// background maintenance job.
func (s *Service) ScanOrphans(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var orphans []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == ".gitkeep" {
			continue
		}
		if !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			orphans = append(orphans, entry.Name())
		}
	}
	return orphans, nil
}

func (s *Service) record(ctx context.Context, actor *auth.Principal, ip string, entry audit.Entry) {
	if s.recorder == nil {
		return
	}
	entry.ActorID = actor.ID
	entry.IPAddress = ip
	_, _ = s.recorder.Record(ctx, entry)
}
