package database

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"hoteltriggers/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements DocumentStore on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) collection(path string) (*firestore.CollectionRef, error) {
	ref := s.client.Collection(path)
	if ref == nil {
		return nil, fmt.Errorf("%w: %q is not a collection", models.ErrInvalidPath, path)
	}
	return ref, nil
}

// Get reads one document; codes.NotFound is reported as a missing snapshot.
func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*models.Snapshot, error) {
	ref, err := s.collection(collection)
	if err != nil {
		return nil, err
	}
	path := models.DocumentPath(collection, id)

	doc, err := ref.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &models.Snapshot{ID: id, Path: path}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !doc.Exists() {
		return &models.Snapshot{ID: id, Path: path}, nil
	}
	return &models.Snapshot{ID: id, Path: path, Exists: true, Fields: doc.Data()}, nil
}

func (s *FirestoreStore) List(ctx context.Context, collection string) ([]*models.Snapshot, error) {
	ref, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	iter := ref.Documents(ctx)
	defer iter.Stop()

	var docs []*models.Snapshot
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", collection, err)
		}
		docs = append(docs, &models.Snapshot{
			ID:     doc.Ref.ID,
			Path:   models.DocumentPath(collection, doc.Ref.ID),
			Exists: true,
			Fields: doc.Data(),
		})
	}
	return docs, nil
}

// Update applies a field-level update. Firestore rejects updates of missing documents.
func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	ref, err := s.collection(collection)
	if err != nil {
		return err
	}
	path := models.DocumentPath(collection, id)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}

	if _, err := ref.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("failed to update %s: %w", path, ErrDocumentNotFound)
		}
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return nil
}
