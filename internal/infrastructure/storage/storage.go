// Package storage builds the blob store selected by configuration and the
// Google client options shared by the cloud backends.
package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"nexusmarket/internal/domain/repository"
	"nexusmarket/internal/infrastructure/blobstore"
	"nexusmarket/pkg/config"
	"nexusmarket/pkg/logger"
)

const pingTimeout = 5 * time.Second

// ClientOptions picks service account credentials: inline JSON first, then a
// key file. With neither, the Google clients fall back to application default
// credentials.
func ClientOptions(cfg *config.Config) ([]option.ClientOption, error) {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))}, nil
	}

	if path := cfg.FirebaseServiceAccountPath; path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("service account file %s: %w", path, err)
		}
		logger.Info("Using service account from file: %s", path)
		return []option.ClientOption{option.WithCredentialsFile(path)}, nil
	}

	logger.Info("Using application default credentials")
	return nil, nil
}

// NewBlobStore opens the backend named by cfg.StorageBackend. The caller owns
// the returned store and must Close it.
func NewBlobStore(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (repository.BlobStore, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("NewBlobStore: using in-memory storage, data is lost on restart")
		return blobstore.NewMemory(), nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("Connected to redis at %s", cfg.RedisAddr)
		return blobstore.NewRedis(client, cfg.StoragePrefix), nil

	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		return blobstore.NewFirestore(client, cfg.StoragePrefix), nil

	case config.BackendGCS:
		client, err := gcs.NewClient(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return blobstore.NewGCS(client, cfg.StorageBucket, cfg.StoragePrefix), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
