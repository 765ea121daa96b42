package storage

import (
	"context"

	"weekly_toast_bot/internal/domain/provider"

	"github.com/sirupsen/logrus"
)

// FallbackStore tries the primary store first and falls back to the
// secondary on any error. The fallback is transparent to callers: both paths
// return a public URL for the stored object.
type FallbackStore struct {
	primary   provider.ObjectStore
	secondary provider.ObjectStore
	logger    *logrus.Entry
}

func NewFallbackStore(primary, secondary provider.ObjectStore, logger *logrus.Entry) *FallbackStore {
	return &FallbackStore{primary: primary, secondary: secondary, logger: logger}
}

func (s *FallbackStore) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if s.primary != nil {
		url, err := s.primary.Upload(ctx, data, filename)
		if err == nil {
			return url, nil
		}
		s.logger.WithError(err).WithField("filename", filename).
			Warn("Primary object storage unavailable, falling back to local disk")
	}
	return s.secondary.Upload(ctx, data, filename)
}
