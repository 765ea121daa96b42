// Package storage persists narration audio: an authenticated HTTP object
// store with a transparent local-disk fallback.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPObjectStore uploads objects via PUT to <uploadURL>/<filename> and
// serves them from <publicBaseURL>/<filename>.
type HTTPObjectStore struct {
	httpClient    *http.Client
	uploadURL     string
	authToken     string
	publicBaseURL string
}

func NewHTTPObjectStore(uploadURL, authToken, publicBaseURL string) *HTTPObjectStore {
	return &HTTPObjectStore{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		uploadURL:     strings.TrimRight(uploadURL, "/"),
		authToken:     authToken,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *HTTPObjectStore) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.uploadURL+"/"+filename, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/mpeg")
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("object storage returned status %d for %s", resp.StatusCode, filename)
	}
	return s.publicBaseURL + "/" + filename, nil
}
