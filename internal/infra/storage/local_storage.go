package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalDiskStore writes audio files under a public-serving directory. It is
// the fallback when the preferred object storage is unavailable.
type LocalDiskStore struct {
	dir           string
	publicBaseURL string
}

func NewLocalDiskStore(dir, publicBaseURL string) *LocalDiskStore {
	return &LocalDiskStore{dir: dir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *LocalDiskStore) Upload(_ context.Context, data []byte, filename string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	return s.publicBaseURL + "/audio/" + filename, nil
}
