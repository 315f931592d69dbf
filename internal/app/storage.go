// Package app provides object-storage initialization.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/storage"
)

// StorageComponents holds object-storage components.
type StorageComponents struct {
	Store storage.ObjectStore
}

// InitializeStorage connects to the issue PDF bucket. Returns nil if storage
// is disabled or the client cannot be created; the issue endpoints are then
// not registered.
func InitializeStorage(ctx context.Context, cfg config.StorageConfig) *StorageComponents {
	if !cfg.Enabled || cfg.Bucket == "" {
		return nil
	}

	store, err := storage.NewGCSStore(ctx, cfg.Bucket)
	if err != nil {
		log.Error().Err(err).Str("bucket", cfg.Bucket).Msg("Failed to create storage client - continuing without issue catalog")
		return nil
	}

	log.Info().Str("bucket", cfg.Bucket).Msg("Connected to issue bucket")
	return &StorageComponents{Store: store}
}
