package models

import (
	"errors"
	"strings"
)

// ErrInvalidPath is returned when a document or collection path is malformed.
var ErrInvalidPath = errors.New("invalid document path")

// Snapshot is a point-in-time copy of a schemaless document.
type Snapshot struct {
	ID     string         `json:"id"`
	Path   string         `json:"path"`
	Exists bool           `json:"exists"`
	Fields map[string]any `json:"fields,omitempty"`
}

// Field returns the raw value stored under key, or nil.
func (s *Snapshot) Field(key string) any {
	if s == nil || s.Fields == nil {
		return nil
	}
	return s.Fields[key]
}

// StringField returns the field as a string when it holds one.
func (s *Snapshot) StringField(key string) string {
	v, _ := s.Field(key).(string)
	return v
}

// SplitPath splits a slash separated path, rejecting empty segments.
func SplitPath(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, ErrInvalidPath
	}
	segs := strings.Split(path, "/")
	for _, s := range segs {
		if s == "" {
			return nil, ErrInvalidPath
		}
	}
	return segs, nil
}

// DocumentPath joins a collection path and a document id.
func DocumentPath(collection, id string) string {
	return strings.Trim(collection, "/") + "/" + id
}

// SplitDocumentPath returns the collection path and id of a document path.
// Document paths always have an even number of segments.
func SplitDocumentPath(path string) (collection, id string, err error) {
	segs, err := SplitPath(path)
	if err != nil {
		return "", "", err
	}
	if len(segs)%2 != 0 {
		return "", "", ErrInvalidPath
	}
	return strings.Join(segs[:len(segs)-1], "/"), segs[len(segs)-1], nil
}
