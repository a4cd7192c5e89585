// Package blob abstracts the object store holding uploaded evidence and
// report files. The core treats blobs as opaque handles: storage happens at
// intake time, deletion is best-effort and never part of a database
// transaction.
package blob

import (
	"context"
	"io"
)

// Store is the blob store collaborator contract.
type Store interface {
	// Put uploads a payload under key and returns once it is durable.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	// Delete removes the blob for key. Callers treat failures as advisory:
	// they are logged, not propagated.
	Delete(ctx context.Context, key string) error
}
