// Package scope implements the per-request container that backs page,
// AJAX and data dispatch.
//
// A Scoper hands out one Scope per dispatched request. Values provisioned
// through Provide live exactly as long as that Scope and are released when
// it exits. Handlers always pair Enter with a deferred Exit so the scope is
// torn down on normal return, error and panic alike.
package scope

import (
	"context"
	"sync"
	"sync/atomic"

	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
)

// ErrOutOfScope is returned when a scoped value is requested without an
// active scope.
var ErrOutOfScope = apperrors.E(apperrors.KindOutOfScope, "no request scope is active")

// Scoper creates request scopes and tracks their lifecycle.
type Scoper struct {
	nextID  atomic.Uint64
	active  atomic.Int64
	entered atomic.Uint64
	exited  atomic.Uint64
}

// NewScoper returns an empty scoper.
func NewScoper() *Scoper {
	return &Scoper{}
}

// Enter opens a scope and returns a context carrying it.
func (s *Scoper) Enter(ctx context.Context) (context.Context, *Scope) {
	if ctx == nil {
		ctx = context.Background()
	}
	sc := &Scope{
		id:         s.nextID.Add(1),
		scoper:     s,
		properties: newProperties(),
		values:     make(map[any]any),
	}
	s.entered.Add(1)
	s.active.Add(1)
	return context.WithValue(ctx, scopeContextKey{}, sc), sc
}

// Within runs fn inside a fresh scope and always exits it, including when fn
// panics.
func (s *Scoper) Within(ctx context.Context, fn func(context.Context, *Scope) error) error {
	scoped, sc := s.Enter(ctx)
	defer sc.Exit()
	if fn == nil {
		return nil
	}
	return fn(scoped, sc)
}

// Active reports the number of scopes entered but not yet exited.
func (s *Scoper) Active() int64 {
	return s.active.Load()
}

// Entered reports the total number of scopes opened.
func (s *Scoper) Entered() uint64 {
	return s.entered.Load()
}

// Exited reports the total number of scopes closed.
func (s *Scoper) Exited() uint64 {
	return s.exited.Load()
}

// Scope is one request-lifetime container.
type Scope struct {
	id         uint64
	scoper     *Scoper
	properties *Properties

	mu      sync.Mutex
	values  map[any]any
	cleanup []func()
	closed  atomic.Bool
}

type scopeContextKey struct{}

// FromContext returns the scope carried by ctx.
func FromContext(ctx context.Context) (*Scope, bool) {
	if ctx == nil {
		return nil, false
	}
	sc, ok := ctx.Value(scopeContextKey{}).(*Scope)
	if !ok || sc == nil || sc.Exited() {
		return nil, false
	}
	return sc, true
}

// ID returns the scope's sequence number within its scoper.
func (s *Scope) ID() uint64 {
	return s.id
}

// Properties returns the request property bag.
func (s *Scope) Properties() *Properties {
	return s.properties
}

// OnExit registers fn to run when the scope exits. Cleanups run in reverse
// registration order. Registering on an exited scope runs fn immediately.
func (s *Scope) OnExit(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanup = append(s.cleanup, fn)
	s.mu.Unlock()
}

// Exit closes the scope. Only the first call has an effect; it reports
// whether this call performed the exit.
func (s *Scope) Exit() bool {
	if s == nil || !s.closed.CompareAndSwap(false, true) {
		return false
	}
	s.mu.Lock()
	cleanup := s.cleanup
	s.cleanup = nil
	s.values = nil
	s.mu.Unlock()

	for idx := len(cleanup) - 1; idx >= 0; idx-- {
		cleanup[idx]()
	}
	s.properties.clear()
	if s.scoper != nil {
		s.scoper.active.Add(-1)
		s.scoper.exited.Add(1)
	}
	return true
}

// Exited reports whether Exit has run.
func (s *Scope) Exited() bool {
	return s.closed.Load()
}

func (s *Scope) load(key any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		return nil, false
	}
	value, ok := s.values[key]
	return value, ok
}

// storeIfAbsent keeps the first stored value for key.
func (s *Scope) storeIfAbsent(key any, value any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		return nil, false
	}
	if existing, ok := s.values[key]; ok {
		return existing, true
	}
	s.values[key] = value
	return value, true
}

type keyID struct {
	name string
}

// Key identifies a scoped value of type T.
type Key[T any] struct {
	id *keyID
}

// NewKey returns a distinct key. Keys with the same name do not collide.
func NewKey[T any](name string) Key[T] {
	return Key[T]{id: &keyID{name: name}}
}

// Name returns the key's diagnostic name.
func (k Key[T]) Name() string {
	if k.id == nil {
		return ""
	}
	return k.id.name
}

// Provide returns the scope's value for key, calling factory on first use.
// A failing factory leaves nothing cached.
func Provide[T any](ctx context.Context, key Key[T], factory func(context.Context) (T, error)) (T, error) {
	var zero T
	sc, ok := FromContext(ctx)
	if !ok || key.id == nil {
		return zero, ErrOutOfScope
	}
	if value, ok := sc.load(key.id); ok {
		return value.(T), nil
	}
	if factory == nil {
		return zero, apperrors.E(apperrors.KindNotFound, "no provider for scoped value "+key.Name())
	}
	created, err := factory(ctx)
	if err != nil {
		return zero, err
	}
	stored, ok := sc.storeIfAbsent(key.id, created)
	if !ok {
		return zero, ErrOutOfScope
	}
	return stored.(T), nil
}

// Set stores value for key in the active scope, replacing any prior value.
func Set[T any](ctx context.Context, key Key[T], value T) error {
	sc, ok := FromContext(ctx)
	if !ok || key.id == nil {
		return ErrOutOfScope
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.values == nil {
		return ErrOutOfScope
	}
	sc.values[key.id] = value
	return nil
}

// Lookup returns the value for key without provisioning it.
func Lookup[T any](ctx context.Context, key Key[T]) (T, bool) {
	var zero T
	sc, ok := FromContext(ctx)
	if !ok || key.id == nil {
		return zero, false
	}
	value, ok := sc.load(key.id)
	if !ok {
		return zero, false
	}
	return value.(T), true
}
