package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TriggerEnvelope is the body a Cloud Functions Firestore trigger posts.
type TriggerEnvelope struct {
	Context EventContext   `json:"context"`
	Data    FirestoreEvent `json:"data"`
}

type EventContext struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Resource  string    `json:"resource"`
	Timestamp time.Time `json:"timestamp"`
}

// FirestoreEvent carries the document before and after the write. An
// absent side is sent as an empty object.
type FirestoreEvent struct {
	OldValue *FirestoreDocument `json:"oldValue"`
	Value    *FirestoreDocument `json:"value"`
}

type FirestoreDocument struct {
	Name       string                    `json:"name"`
	Fields     map[string]FirestoreValue `json:"fields"`
	CreateTime time.Time                 `json:"createTime"`
	UpdateTime time.Time                 `json:"updateTime"`
}

func (d *FirestoreDocument) present() bool {
	return d != nil && d.Name != ""
}

// FirestoreValue is a typed value in the Firestore REST encoding. Exactly one field is set.
type FirestoreValue struct {
	NullValue      *string         `json:"nullValue,omitempty"`
	BooleanValue   *bool           `json:"booleanValue,omitempty"`
	IntegerValue   json.RawMessage `json:"integerValue,omitempty"`
	DoubleValue    json.RawMessage `json:"doubleValue,omitempty"`
	StringValue    *string         `json:"stringValue,omitempty"`
	TimestampValue *time.Time      `json:"timestampValue,omitempty"`
	ReferenceValue *string         `json:"referenceValue,omitempty"`
	BytesValue     *string         `json:"bytesValue,omitempty"`
	GeoPointValue  *GeoPoint       `json:"geoPointValue,omitempty"`
	MapValue       *FirestoreMap   `json:"mapValue,omitempty"`
	ArrayValue     *FirestoreArray `json:"arrayValue,omitempty"`
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type FirestoreMap struct {
	Fields map[string]FirestoreValue `json:"fields"`
}

type FirestoreArray struct {
	Values []FirestoreValue `json:"values"`
}

// unquote accepts both "123" and 123.
func unquote(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if uq, err := strconv.Unquote(s); err == nil {
		return uq
	}
	return s
}

// Decode converts the value to the Go type the Firestore client library would return.
func (v FirestoreValue) Decode() (any, error) {
	switch {
	case v.NullValue != nil:
		return nil, nil
	case v.BooleanValue != nil:
		return *v.BooleanValue, nil
	case v.IntegerValue != nil:
		n, err := strconv.ParseInt(unquote(v.IntegerValue), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad integerValue %s: %w", v.IntegerValue, err)
		}
		return n, nil
	case v.DoubleValue != nil:
		switch s := unquote(v.DoubleValue); s {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		default:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("bad doubleValue %s: %w", v.DoubleValue, err)
			}
			return f, nil
		}
	case v.StringValue != nil:
		return *v.StringValue, nil
	case v.TimestampValue != nil:
		return *v.TimestampValue, nil
	case v.ReferenceValue != nil:
		return *v.ReferenceValue, nil
	case v.BytesValue != nil:
		b, err := base64.StdEncoding.DecodeString(*v.BytesValue)
		if err != nil {
			return nil, fmt.Errorf("bad bytesValue: %w", err)
		}
		return b, nil
	case v.GeoPointValue != nil:
		return *v.GeoPointValue, nil
	case v.MapValue != nil:
		return decodeFields(v.MapValue.Fields)
	case v.ArrayValue != nil:
		out := make([]any, len(v.ArrayValue.Values))
		for i, e := range v.ArrayValue.Values {
			d, err := e.Decode()
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	}
	return nil, nil
}

func decodeFields(fields map[string]FirestoreValue) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		d, err := v.Decode()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		out[k] = d
	}
	return out, nil
}

// ResourcePath trims a full resource name down to the document path.
func ResourcePath(resource string) string {
	if i := strings.Index(resource, "/documents/"); i >= 0 {
		return resource[i+len("/documents/"):]
	}
	return strings.Trim(resource, "/")
}

func (d *FirestoreDocument) snapshot() (*Snapshot, error) {
	if !d.present() {
		return nil, nil
	}
	path := ResourcePath(d.Name)
	_, id, err := SplitDocumentPath(path)
	if err != nil {
		return nil, err
	}
	fields, err := decodeFields(d.Fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Snapshot{ID: id, Path: path, Exists: true, Fields: fields}, nil
}

// legacyEventTypePrefix prefixes the event types of the JSON {context,data}
// delivery. CloudEvents deliveries carry a protobuf body and are not accepted.
const legacyEventTypePrefix = "providers/cloud.firestore/eventTypes/document."

func changeKind(eventType string, hasOld, hasNew bool) (ChangeKind, error) {
	action, ok := strings.CutPrefix(eventType, legacyEventTypePrefix)
	if !ok {
		return "", fmt.Errorf("unsupported event type %q", eventType)
	}
	switch action {
	case "create":
		return ChangeCreate, nil
	case "update":
		return ChangeUpdate, nil
	case "delete":
		return ChangeDelete, nil
	case "write":
		switch {
		case hasOld && hasNew:
			return ChangeUpdate, nil
		case hasNew:
			return ChangeCreate, nil
		case hasOld:
			return ChangeDelete, nil
		}
	}
	return "", fmt.Errorf("unsupported event type %q", eventType)
}

// ChangeEvent converts the envelope to the form the trigger registry dispatches.
func (e TriggerEnvelope) ChangeEvent() (ChangeEvent, error) {
	before, err := e.Data.OldValue.snapshot()
	if err != nil {
		return ChangeEvent{}, fmt.Errorf("oldValue: %w", err)
	}
	after, err := e.Data.Value.snapshot()
	if err != nil {
		return ChangeEvent{}, fmt.Errorf("value: %w", err)
	}

	kind, err := changeKind(e.Context.EventType, before != nil, after != nil)
	if err != nil {
		return ChangeEvent{}, err
	}

	path := ResourcePath(e.Context.Resource)
	if path == "" {
		switch {
		case after != nil:
			path = after.Path
		case before != nil:
			path = before.Path
		}
	}
	if _, _, err := SplitDocumentPath(path); err != nil {
		return ChangeEvent{}, fmt.Errorf("resource %q: %w", e.Context.Resource, err)
	}

	return ChangeEvent{
		ID:        e.Context.EventID,
		Kind:      kind,
		Path:      path,
		Before:    before,
		After:     after,
		Timestamp: e.Context.Timestamp,
	}, nil
}
