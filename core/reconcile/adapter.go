package reconcile

import "context"

// Source reads every active identity from the source directory.
type Source interface {
	// Name returns the name of the source (e.g., "entra").
	Name() string

	// FetchAll follows pagination until exhausted and returns all identities.
	// Any non-recoverable fetch error fails the whole call; no partial result
	// is returned.
	FetchAll(ctx context.Context) ([]Identity, error)
}

// Store reads and writes the destination contact store.
//
// The write methods report success as a boolean. Implementations log the
// reason for a failure (non-2xx response, stale ETag, transport error) and
// return false instead of an error.
type Store interface {
	// Name returns the name of the store (e.g., "gcontacts").
	Name() string

	// FetchAll follows pagination until exhausted and returns all contacts.
	FetchAll(ctx context.Context) ([]Contact, error)

	// Create creates a contact from the given fields.
	Create(ctx context.Context, fields Identity) bool

	// Update overwrites the contact identified by id. etag must be the value
	// read by FetchAll.
	Update(ctx context.Context, id, etag string, fields Identity) bool

	// Delete removes the contact identified by id. key is used for logging.
	Delete(ctx context.Context, id, etag, key string) bool
}
