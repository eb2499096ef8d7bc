package blobstore

import (
	"context"
	"errors"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/logger"
)

// GCS keeps each collection as one object and guards writes with generation
// preconditions.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCS(client *storage.Client, bucket, prefix string) *GCS {
	return &GCS{client: client, bucket: bucket, prefix: prefix}
}

func (g *GCS) object(key string) *storage.ObjectHandle {
	return g.client.Bucket(g.bucket).Object(g.prefix + key + ".json")
}

func (g *GCS) Get(ctx context.Context, key string) ([]byte, error) {
	data, _, err := g.read(ctx, g.object(key))
	if err != nil {
		return nil, passThrough("Failed to read "+key, err)
	}
	return data, nil
}

// read returns the object's content and generation; a missing object yields
// nil content and generation 0.
func (g *GCS) read(ctx context.Context, obj *storage.ObjectHandle) ([]byte, int64, error) {
	attrs, err := obj.Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	r, err := obj.Generation(attrs.Generation).NewReader(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	return data, attrs.Generation, nil
}

func (g *GCS) Update(ctx context.Context, key string, fn repository.UpdateFunc) error {
	obj := g.object(key)

	var lastErr error
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		current, generation, err := g.read(ctx, obj)
		if errors.Is(err, storage.ErrObjectNotExist) {
			// replaced between Attrs and NewReader
			lastErr = err
			continue
		}
		if err != nil {
			return passThrough("Failed to read "+key, err)
		}

		next, err := fn(current)
		if err != nil || next == nil {
			return err
		}

		cond := storage.Conditions{GenerationMatch: generation}
		if generation == 0 {
			cond = storage.Conditions{DoesNotExist: true}
		}

		w := obj.If(cond).NewWriter(ctx)
		w.ContentType = "application/json"
		w.CacheControl = "no-store"
		if _, err := w.Write(next); err != nil {
			w.Close()
			return passThrough("Failed to write "+key, err)
		}
		err = w.Close()
		if err == nil {
			return nil
		}
		if !isPreconditionFailure(err) {
			return passThrough("Failed to write "+key, err)
		}
		lastErr = err
		logger.Debug("GCS.Update: object %s changed during attempt %d, retrying", key, attempt)
	}
	return conflict(key, lastErr)
}

func isPreconditionFailure(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusPreconditionFailed
	}
	return status.Code(err) == codes.FailedPrecondition
}

func (g *GCS) Close() error {
	return g.client.Close()
}
