package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"
)

// Kind tags a notification with the producer event it came from. The kind
// decides which table the notification's target id resolves against and how
// the resolved target is rendered.
type Kind string

const (
	KindReview Kind = "review" // target: the new review
	KindFollow Kind = "follow" // target: the follower's user record
	KindDerive Kind = "derive" // target: the newly derived recipe
)

// ErrUnknownKind means a notification references a kind with no registry
// entry. Unlike a deleted target this is a configuration problem, so it is
// surfaced as an error rather than filtered silently.
var ErrUnknownKind = errors.New("unknown notification kind")

// TargetFinder fetches the entity a kind's target id points at.
// A deleted or never-existing target is (nil, nil), not an error.
type TargetFinder func(ctx context.Context, id int64) (any, error)

type entry struct {
	find TargetFinder
	tmpl *template.Template
}

// Registry maps each notification kind to its fetch and render behaviour.
// It is populated once at startup and read concurrently afterwards.
type Registry struct {
	mu    sync.RWMutex
	kinds map[Kind]entry
}

func NewRegistry() *Registry {
	return &Registry{kinds: make(map[Kind]entry)}
}

// Register installs or overwrites the entry for kind. Repeated registration
// with the same arguments is safe.
func (r *Registry) Register(kind Kind, find TargetFinder, templateText string) error {
	tmpl, err := template.New(string(kind)).Parse(templateText)
	if err != nil {
		return fmt.Errorf("parse template for kind %q: %w", kind, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = entry{find: find, tmpl: tmpl}
	return nil
}

// Known reports whether kind has a registry entry.
func (r *Registry) Known(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.kinds[kind]
	return ok
}

// Resolve fetches the target entity for (kind, id). The target having been
// deleted is the expected steady-state outcome and returns (nil, nil);
// an unregistered kind returns ErrUnknownKind.
func (r *Registry) Resolve(ctx context.Context, kind Kind, id int64) (any, error) {
	r.mu.RLock()
	e, ok := r.kinds[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return e.find(ctx, id)
}

// Render produces the display markup for an already-resolved target. It only
// reads fields of the target; no I/O.
func (r *Registry) Render(kind Kind, target any) (template.HTML, error) {
	r.mu.RLock()
	e, ok := r.kinds[kind]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, target); err != nil {
		return "", fmt.Errorf("render notification kind %q: %w", kind, err)
	}
	return template.HTML(buf.String()), nil
}
