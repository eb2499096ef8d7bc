package blobstore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nexusmarket/internal/domain/repository"
)

const defaultFirestoreCollection = "blobs"

// Firestore keeps each collection in a single document. Documents are
// limited to 1 MiB, which bounds how large a collection can grow.
type Firestore struct {
	client     *firestore.Client
	collection string
}

type blobDocument struct {
	Data      []byte    `firestore:"data"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func NewFirestore(client *firestore.Client, collection string) *Firestore {
	if collection == "" {
		collection = defaultFirestoreCollection
	}
	return &Firestore{client: client, collection: collection}
}

func (f *Firestore) Get(ctx context.Context, key string) ([]byte, error) {
	snap, err := f.client.Collection(f.collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, passThrough("Failed to read "+key, err)
	}

	var doc blobDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, passThrough("Failed to parse "+key, err)
	}
	return doc.Data, nil
}

// Update runs fn inside a Firestore transaction, which retries on contention.
func (f *Firestore) Update(ctx context.Context, key string, fn repository.UpdateFunc) error {
	ref := f.client.Collection(f.collection).Doc(key)

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var current []byte

		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var doc blobDocument
			if err := snap.DataTo(&doc); err != nil {
				return err
			}
			current = doc.Data
		case status.Code(err) == codes.NotFound:
		default:
			return err
		}

		next, err := fn(current)
		if err != nil || next == nil {
			return err
		}
		return tx.Set(ref, blobDocument{Data: next, UpdatedAt: time.Now()})
	}, firestore.MaxAttempts(maxUpdateAttempts))

	if status.Code(err) == codes.Aborted {
		return conflict(key, err)
	}
	return passThrough("Failed to update "+key, err)
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
