package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hoteltriggers/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore implements DocumentStore on MongoDB. A collection path such as
// "hotels/h1/rooms" maps to the Mongo collection "hotels.h1.rooms", so ids
// on the path must not contain dots. Document ids are stored in _id.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// CollectionName maps a collection path to its Mongo collection name.
func CollectionName(path string) (string, error) {
	segs, err := models.SplitPath(path)
	if err != nil {
		return "", err
	}
	if len(segs)%2 != 1 {
		return "", fmt.Errorf("%w: %q is not a collection", models.ErrInvalidPath, path)
	}
	return strings.Join(segs, "."), nil
}

// CollectionPath is the inverse of CollectionName.
func CollectionPath(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

func (s *MongoStore) coll(path string) (*mongo.Collection, error) {
	name, err := CollectionName(path)
	if err != nil {
		return nil, err
	}
	return s.db.Collection(name), nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (*models.Snapshot, error) {
	c, err := s.coll(collection)
	if err != nil {
		return nil, err
	}
	path := models.DocumentPath(collection, id)

	var raw bson.M
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Snapshot{ID: id, Path: path}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &models.Snapshot{ID: id, Path: path, Exists: true, Fields: DocumentFields(raw)}, nil
}

func (s *MongoStore) List(ctx context.Context, collection string) ([]*models.Snapshot, error) {
	c, err := s.coll(collection)
	if err != nil {
		return nil, err
	}

	cursor, err := c.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []*models.Snapshot
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode document in %s: %w", collection, err)
		}
		id := DocumentID(raw)
		docs = append(docs, &models.Snapshot{
			ID:     id,
			Path:   models.DocumentPath(collection, id),
			Exists: true,
			Fields: DocumentFields(raw),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	c, err := s.coll(collection)
	if err != nil {
		return err
	}
	path := models.DocumentPath(collection, id)

	result, err := c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("failed to update %s: %w", path, ErrDocumentNotFound)
	}
	return nil
}

// DocumentID renders the _id of a raw document as a string.
func DocumentID(raw bson.M) string {
	switch id := raw["_id"].(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

// DocumentFields strips _id and converts bson container types to plain Go values.
func DocumentFields(raw bson.M) map[string]any {
	if raw == nil {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case bson.A:
		a := make([]any, len(t))
		for i, e := range t {
			a[i] = plainValue(e)
		}
		return a
	case primitive.DateTime:
		return t.Time()
	case primitive.Decimal128:
		if f, err := strconv.ParseFloat(t.String(), 64); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
