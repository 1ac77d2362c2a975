package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxResumeNameLen = 100

// ResumeFile is an uploaded resume awaiting storage.
type ResumeFile struct {
	Filename string
	Content  io.Reader
}

// ResumeStore persists resume files and returns the stored name.
type ResumeStore interface {
	Save(ctx context.Context, file ResumeFile) (string, error)
	Remove(ctx context.Context, name string) error
}

// DiskResumeStore writes resumes to a local directory served under /uploads.
type DiskResumeStore struct {
	dir string
	now func() time.Time
}

func NewDiskResumeStore(dir string) *DiskResumeStore {
	return &DiskResumeStore{dir: dir, now: time.Now}
}

func (s *DiskResumeStore) Save(_ context.Context, file ResumeFile) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), uuid.New().String()[:8], sanitizeFilename(file.Filename))
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	if _, err := io.Copy(f, file.Content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write resume file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close resume file: %w", err)
	}
	return name, nil
}

func (s *DiskResumeStore) Remove(_ context.Context, name string) error {
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// sanitizeFilename keeps the base name of an upload and replaces anything
// outside [A-Za-z0-9._-] with an underscore.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		out = "resume"
	}
	if len(out) > maxResumeNameLen {
		out = out[len(out)-maxResumeNameLen:]
	}
	return out
}
