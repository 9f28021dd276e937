// Package data resolves components that render JSON payloads for data calls.
package data

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
	"github.com/louisbranch/jweb/internal/services/jweb/registry"
)

// Component renders the payload served for a data call.
type Component interface {
	RenderData(ctx context.Context) (string, error)
}

// Func adapts a function to Component.
type Func func(ctx context.Context) (string, error)

// RenderData implements Component.
func (fn Func) RenderData(ctx context.Context) (string, error) {
	return fn(ctx)
}

// Factory builds the component for one data call.
type Factory = registry.Factory[Component]

// Registry maps class names to data component factories.
type Registry struct {
	components *registry.Registry[Component]
}

// NewRegistry returns an empty data component registry.
func NewRegistry() *Registry {
	return &Registry{components: registry.New[Component]("data component")}
}

// Register binds className to factory.
func (r *Registry) Register(className string, factory Factory) error {
	return r.components.Register(className, factory)
}

// Names returns the registered class names.
func (r *Registry) Names() []string {
	return r.components.Names()
}

// Render resolves the encoded component id and renders its payload. A
// panicking factory or component is reported as an unknown error.
func (r *Registry) Render(ctx context.Context, componentID string) (payload string, err error) {
	if strings.TrimSpace(componentID) == "" {
		return "", apperrors.E(apperrors.KindInvalidRequest, "data component is required")
	}
	factory, ok := r.components.Lookup(componentID)
	if !ok {
		return "", apperrors.E(apperrors.KindNotFound, "data component "+registry.Decode(componentID)+" is not registered")
	}
	name := registry.Decode(componentID)
	defer func() {
		if rec := recover(); rec != nil {
			payload, err = "", apperrors.Wrap(apperrors.KindUnknown, "render data component "+name, fmt.Errorf("panic: %v", rec))
		}
	}()
	component, err := factory(ctx)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnknown, "build data component "+name, err)
	}
	if component == nil {
		return "", apperrors.E(apperrors.KindUnknown, "build data component "+name+": factory returned nil")
	}
	payload, err = component.RenderData(ctx)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnknown, "render data component "+name, err)
	}
	return payload, nil
}
