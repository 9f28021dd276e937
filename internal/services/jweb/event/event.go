// Package event resolves and fires server-side AJAX event handlers.
package event

import (
	"context"
	"strings"

	"github.com/louisbranch/jweb/internal/platform/i18n"
	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
	"github.com/louisbranch/jweb/internal/services/jweb/registry"
)

// Event handles one AJAX call and fills the response.
type Event interface {
	Fire(ctx context.Context, call *ajax.Call, resp *ajax.Response) error
}

// Func adapts a function to Event.
type Func func(ctx context.Context, call *ajax.Call, resp *ajax.Response) error

// Fire implements Event.
func (fn Func) Fire(ctx context.Context, call *ajax.Call, resp *ajax.Response) error {
	return fn(ctx, call, resp)
}

// Factory builds the event instance for one call.
type Factory = registry.Factory[Event]

// Registry maps class names to event factories.
type Registry struct {
	events *registry.Registry[Event]
}

// NewRegistry returns an empty event registry.
func NewRegistry() *Registry {
	return &Registry{events: registry.New[Event]("event")}
}

// Register binds className to factory.
func (r *Registry) Register(className string, factory Factory) error {
	return r.events.Register(className, factory)
}

// RegisterEvent binds a stateless event under its type name.
func (r *Registry) RegisterEvent(e Event) error {
	return r.events.Register(registry.NameOf(e), func(context.Context) (Event, error) { return e, nil })
}

// Names returns the registered class names.
func (r *Registry) Names() []string {
	return r.events.Names()
}

// Resolve builds the event for an encoded class name. Unknown names yield an
// invalid-request error.
func (r *Registry) Resolve(ctx context.Context, className string) (Event, error) {
	if strings.TrimSpace(className) == "" {
		return nil, apperrors.EK(apperrors.KindInvalidRequest, i18n.KeyEventNotFound, "The Event To Be Triggered Could Not Be Found")
	}
	factory, ok := r.events.Lookup(className)
	if !ok {
		return nil, apperrors.EK(apperrors.KindInvalidRequest, i18n.KeyEventNotFound, "The Event To Be Triggered Could Not Be Found")
	}
	e, err := factory(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnknown, "build event "+registry.Decode(className)+": "+err.Error(), err)
	}
	if e == nil {
		return nil, apperrors.E(apperrors.KindUnknown, "build event "+registry.Decode(className)+": factory returned nil")
	}
	return e, nil
}
