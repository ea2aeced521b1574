package queue

import (
	"context"
	"fmt"
	"slices"
)

type (
	// Handler is the executable behavior of one task variant.
	// Handle returns the detail part of the result line, e.g. "200 OK".
	Handler interface {
		Name() Variant
		Handle(ctx context.Context, id int64) (string, error)
	}

	HandlerFunc func(ctx context.Context, id int64) (string, error)
)

func NewHandler(name Variant, handler HandlerFunc) Handler {
	return &funcHandler{
		name:    name,
		handler: handler,
	}
}

type funcHandler struct {
	name    Variant
	handler HandlerFunc
}

func (h *funcHandler) Name() Variant {
	return h.name
}

func (h *funcHandler) Handle(ctx context.Context, id int64) (string, error) {
	return h.handler(ctx, id)
}

// Registry maps variant identifiers to behaviors. The set is fixed at construction.
type Registry struct {
	handlers map[Variant]Handler
}

// NewRegistry builds a closed registry from the given handlers.
// Nil handlers are skipped; empty or duplicate identifiers are rejected.
func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{handlers: make(map[Variant]Handler, len(handlers))}

	for _, h := range handlers {
		if h == nil {
			continue
		}
		name := h.Name()
		if name == "" {
			return nil, fmt.Errorf("%w: empty identifier", ErrUnknownVariant)
		}
		if _, exists := r.handlers[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrVariantAlreadyRegistered, name)
		}
		r.handlers[name] = h
	}

	if len(r.handlers) == 0 {
		return nil, ErrNoHandlers
	}

	return r, nil
}

// Lookup resolves an identifier to its behavior.
func (r *Registry) Lookup(name Variant) (Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return h, nil
}

// Validate reports ErrUnknownVariant for identifiers outside the registered set.
func (r *Registry) Validate(name Variant) error {
	_, err := r.Lookup(name)
	return err
}

// Variants returns the registered identifiers in sorted order.
func (r *Registry) Variants() []Variant {
	names := make([]Variant, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
