package repository

import "context"

// Collection keys under which each serialized collection is stored.
const (
	ConversationsKey = "nexus_chats"
	AccountsKey      = "nexus_users"
	ProductsKey      = "nexus_products"
	WishlistsKey     = "nexus_wishlist"
	JobsKey          = "nexus_jobs"
	ApplicationsKey  = "nexus_job_applications"
)

// UpdateFunc receives the current serialized value (nil when the key is
// absent) and returns the value to store. Returning a nil slice leaves the
// stored value untouched.
type UpdateFunc func(current []byte) ([]byte, error)

// BlobStore persists whole serialized collections under a name. Update must
// be an atomic read-modify-write: two concurrent updates of the same key may
// not both succeed against the same base value.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
