package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestLocalDiskStore_Upload(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalDiskStore(dir, "http://localhost:8080/")

	url, err := s.Upload(context.Background(), []byte("audio"), "abc.mp3")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/audio/abc.mp3", url)

	data, err := os.ReadFile(filepath.Join(dir, "abc.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), data)
}

func TestHTTPObjectStore_Upload(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewHTTPObjectStore(srv.URL+"/uploads", "secret", "https://cdn.example.com")
	url, err := s.Upload(context.Background(), []byte("audio"), "abc.mp3")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/abc.mp3", url)
	assert.Equal(t, "/uploads/abc.mp3", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestFallbackStore_UsesSecondaryWhenPrimaryFails(t *testing.T) {
	dir := t.TempDir()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	primary := NewHTTPObjectStore(srv.URL, "", "https://cdn.example.com")
	secondary := NewLocalDiskStore(dir, "http://localhost:8080")
	s := NewFallbackStore(primary, secondary, quietLogger())

	url, err := s.Upload(context.Background(), []byte("audio"), "abc.mp3")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/audio/abc.mp3", url)

	_, err = os.Stat(filepath.Join(dir, "abc.mp3"))
	assert.NoError(t, err, "fallback should have written to local disk")
}

func TestFallbackStore_NoPrimaryConfigured(t *testing.T) {
	dir := t.TempDir()
	s := NewFallbackStore(nil, NewLocalDiskStore(dir, "http://localhost:8080"), quietLogger())

	url, err := s.Upload(context.Background(), []byte("audio"), "abc.mp3")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/audio/abc.mp3", url)
}

type errStore struct{}

func (errStore) Upload(context.Context, []byte, string) (string, error) {
	return "", fmt.Errorf("backend down")
}

func TestFallbackStore_BothFail(t *testing.T) {
	s := NewFallbackStore(errStore{}, errStore{}, quietLogger())
	_, err := s.Upload(context.Background(), []byte("audio"), "abc.mp3")
	assert.Error(t, err)
}
