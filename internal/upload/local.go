package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Purposes uploaded files are grouped under; each maps to a subdirectory of
// the base upload dir.
const (
	PurposeProfile = "profile"
	PurposeLogo    = "logo"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// AllowedExtension reports whether the filename carries one of the accepted
// image extensions. This is the only upload validation performed.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// LocalStore saves uploaded files to a local directory keyed by purpose.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	for _, purpose := range []string{PurposeProfile, PurposeLogo} {
		if err := os.MkdirAll(filepath.Join(baseDir, purpose), 0755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save writes r under {baseDir}/{purpose}/{filename} and returns the
// sanitized filename actually used.
func (s *LocalStore) Save(purpose, filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("empty filename")
	}

	path, err := s.safeJoin(purpose, name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close file: %w", err)
	}
	return name, nil
}

// SanitizeFilename strips any directory components and characters that are
// unsafe in a stored filename.
func SanitizeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "." || name == ".." {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// safeJoin resolves name under the purpose directory and rejects traversal.
func (s *LocalStore) safeJoin(purpose, name string) (string, error) {
	absBase, err := filepath.Abs(filepath.Join(s.baseDir, purpose))
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(absBase, name))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}
