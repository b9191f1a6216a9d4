package models

import "time"

// ChangeKind is the kind of write that produced a change event.
type ChangeKind string

const (
	ChangeCreate ChangeKind = "create"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// ChangeEvent is one document write delivered by the trigger platform.
// Before is nil for creates and After is nil for deletes.
type ChangeEvent struct {
	ID        string            `json:"id"`
	Kind      ChangeKind        `json:"kind"`
	Path      string            `json:"path"`
	Params    map[string]string `json:"params,omitempty"`
	Before    *Snapshot         `json:"before,omitempty"`
	After     *Snapshot         `json:"after,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Param returns a path parameter extracted by the trigger pattern.
func (e ChangeEvent) Param(name string) string {
	return e.Params[name]
}

// WithParams returns a copy of the event carrying params.
func (e ChangeEvent) WithParams(params map[string]string) ChangeEvent {
	e.Params = params
	return e
}
