package triggers_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"hoteltriggers/database"
	"hoteltriggers/models"
)

// ---- fakes ----

type memStore struct {
	mu      sync.Mutex
	docs    map[string]map[string]map[string]any // collection -> id -> fields
	updates []string
	getErr  error
	listErr error
	updErr  error
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]map[string]map[string]any{}}
}

func (s *memStore) put(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs[collection] == nil {
		s.docs[collection] = map[string]map[string]any{}
	}
	s.docs[collection][id] = fields
}

func (s *memStore) remove(collection, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs[collection], id)
}

func (s *memStore) field(collection, id, key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[collection][id][key]
}

func (s *memStore) Get(_ context.Context, collection, id string) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	snap := &models.Snapshot{ID: id, Path: models.DocumentPath(collection, id)}
	if f, ok := s.docs[collection][id]; ok {
		snap.Exists = true
		snap.Fields = f
	}
	return snap, nil
}

func (s *memStore) List(_ context.Context, collection string) ([]*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*models.Snapshot
	for id, f := range s.docs[collection] {
		out = append(out, &models.Snapshot{ID: id, Path: models.DocumentPath(collection, id), Exists: true, Fields: f})
	}
	return out, nil
}

func (s *memStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updErr != nil {
		return s.updErr
	}
	doc, ok := s.docs[collection][id]
	if !ok {
		return database.ErrDocumentNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	s.updates = append(s.updates, strings.Join([]string{collection, id}, "/"))
	return nil
}

type sent struct {
	token string
	n     models.Notification
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, token string, n models.Notification) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{token: token, n: n})
	if f.err != nil {
		return "", f.err
	}
	return "msg-1", nil
}

type memLedger struct {
	done    map[string]bool
	seenErr error
}

func (l *memLedger) Seen(_ context.Context, trigger, eventID string) (bool, error) {
	if l.seenErr != nil {
		return false, l.seenErr
	}
	return l.done[trigger+"|"+eventID], nil
}

func (l *memLedger) Mark(_ context.Context, trigger, eventID string) error {
	if l.done == nil {
		l.done = map[string]bool{}
	}
	l.done[trigger+"|"+eventID] = true
	return nil
}

var errBoom = errors.New("boom")
