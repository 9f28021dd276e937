// Package registry holds named factories resolved by client-supplied class
// names.
//
// Browsers address server types with underscore-for-dot encoded names
// ("demo_ClickEvent" for "demo.ClickEvent"), so every lookup decodes the
// name before matching.
package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Factory builds a fresh value for one request.
type Factory[T any] func(ctx context.Context) (T, error)

// Registry maps decoded class names to factories.
type Registry[T any] struct {
	kind      string
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// New returns an empty registry. kind labels errors ("event", "data component").
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, factories: make(map[string]Factory[T])}
}

// Register binds name to factory. Names are decoded before storage; duplicate
// names are rejected.
func (r *Registry[T]) Register(name string, factory Factory[T]) error {
	name = Decode(name)
	if name == "" {
		return fmt.Errorf("register %s: name is required", r.kind)
	}
	if factory == nil {
		return fmt.Errorf("register %s %q: factory is required", r.kind, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("register %s %q: already registered", r.kind, name)
	}
	r.factories[name] = factory
	return nil
}

// Lookup returns the factory for an encoded or decoded name.
func (r *Registry[T]) Lookup(name string) (Factory[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[Decode(name)]
	return factory, ok
}

// Names returns registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered names.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Decode turns an underscore-encoded class name into its dotted form.
func Decode(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "_", ".")
}

// Encode turns a dotted class name into its underscore form.
func Encode(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), ".", "_")
}

// NameOf returns the package-qualified type name of v ("demo.ClickEvent").
func NameOf(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
