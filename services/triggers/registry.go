// Package triggers binds change handlers to document path patterns and
// dispatches document store change events to them.
package triggers

import (
	"context"
	"fmt"

	"hoteltriggers/models"
	"hoteltriggers/services/ledger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Handler reacts to one change event. A nil return means the event was
// handled, including the no-op case; an error asks the platform to retry.
type Handler interface {
	Handle(ctx context.Context, evt models.ChangeEvent) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, evt models.ChangeEvent) error

func (f HandlerFunc) Handle(ctx context.Context, evt models.ChangeEvent) error {
	return f(ctx, evt)
}

// Binding is one registered trigger.
type Binding struct {
	Name    string
	Pattern Pattern
	Kinds   []models.ChangeKind
	Handler Handler
}

func (b Binding) accepts(kind models.ChangeKind) bool {
	for _, k := range b.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Registry routes change events to the bindings whose pattern and kinds match.
type Registry struct {
	bindings []Binding
	ledger   ledger.Ledger
	logger   *zap.Logger
}

// NewRegistry creates an empty registry. ldg may be nil.
func NewRegistry(logger *zap.Logger, ldg ledger.Ledger) *Registry {
	return &Registry{ledger: ldg, logger: logger}
}

// Register binds h to a document path pattern for the given change kinds.
func (r *Registry) Register(name, pattern string, kinds []models.ChangeKind, h Handler) error {
	if name == "" || h == nil || len(kinds) == 0 {
		return fmt.Errorf("register %q: name, handler and kinds are required", name)
	}
	for _, b := range r.bindings {
		if b.Name == name {
			return fmt.Errorf("register %q: trigger already registered", name)
		}
	}
	p, err := ParsePattern(pattern)
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}
	r.bindings = append(r.bindings, Binding{Name: name, Pattern: p, Kinds: kinds, Handler: h})
	return nil
}

// Bindings returns the registered triggers in registration order.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Dispatch runs every matching trigger. Triggers are independent: one
// failing does not stop the others, and all failures are returned together.
func (r *Registry) Dispatch(ctx context.Context, evt models.ChangeEvent) error {
	log := r.logger.With(
		zap.String("eventId", evt.ID),
		zap.String("kind", string(evt.Kind)),
		zap.String("path", evt.Path),
	)

	var errs error
	matched := 0
	for _, b := range r.bindings {
		if !b.accepts(evt.Kind) {
			continue
		}
		params, ok := b.Pattern.Match(evt.Path)
		if !ok {
			continue
		}
		matched++
		if err := r.run(ctx, b, evt.WithParams(params), log.With(zap.String("trigger", b.Name))); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", b.Name, err))
		}
	}
	if matched == 0 {
		log.Debug("no trigger bound to event")
	}
	return errs
}

func (r *Registry) run(ctx context.Context, b Binding, evt models.ChangeEvent, log *zap.Logger) error {
	useLedger := r.ledger != nil && evt.ID != ""
	if useLedger {
		seen, err := r.ledger.Seen(ctx, b.Name, evt.ID)
		if err != nil {
			log.Warn("ledger unavailable, running trigger", zap.Error(err))
		} else if seen {
			log.Info("duplicate delivery skipped")
			return nil
		}
	}

	if err := b.Handler.Handle(ctx, evt); err != nil {
		log.Error("trigger failed", zap.Error(err))
		return err
	}

	if useLedger {
		if err := r.ledger.Mark(ctx, b.Name, evt.ID); err != nil {
			log.Warn("failed to record completion", zap.Error(err))
		}
	}
	return nil
}
