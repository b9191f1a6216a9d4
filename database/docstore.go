package database

import (
	"context"
	"errors"

	"hoteltriggers/models"
)

// ErrDocumentNotFound is returned by Update when the target document does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is the subset of a hierarchical document database the triggers rely on.
// Collection paths may be nested, e.g. "hotels/h1/rooms".
type DocumentStore interface {
	// Get reads one document. A missing document is returned with Exists unset and a nil error.
	Get(ctx context.Context, collection, id string) (*models.Snapshot, error)
	// List reads every document of a collection.
	List(ctx context.Context, collection string) ([]*models.Snapshot, error)
	// Update sets the given fields on an existing document, leaving the rest untouched.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
}
