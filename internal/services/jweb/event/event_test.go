package event

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
)

type pingEvent struct{}

func (pingEvent) Fire(_ context.Context, _ *ajax.Call, resp *ajax.Response) error {
	resp.AddEvent("pong()")
	return nil
}

func TestResolveEncodedClassName(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.RegisterEvent(pingEvent{}); err != nil {
		t.Fatalf("RegisterEvent() error = %v", err)
	}
	e, err := reg.Resolve(context.Background(), "event_pingEvent")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	resp := ajax.NewResponse()
	if err := e.Fire(context.Background(), &ajax.Call{}, resp); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("events = %v", resp.Events)
	}
}

func TestResolveUnknownIsInvalidRequest(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, name := range []string{"", "demo_Missing"} {
		_, err := reg.Resolve(context.Background(), name)
		if !apperrors.IsInvalidRequest(err) {
			t.Fatalf("Resolve(%q) error = %v, want invalid request", name, err)
		}
		if err.Error() != "The Event To Be Triggered Could Not Be Found" {
			t.Fatalf("message = %q", err.Error())
		}
	}
}

func TestResolveFactoryFailureIsUnknown(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	cause := errors.New("db down")
	if err := reg.Register("demo.Broken", func(context.Context) (Event, error) { return nil, cause }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register("demo.Nil", func(context.Context) (Event, error) { return nil, nil }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, err := reg.Resolve(context.Background(), "demo_Broken")
	if apperrors.KindOf(err) != apperrors.KindUnknown || !errors.Is(err, cause) {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, err := reg.Resolve(context.Background(), "demo.Nil"); apperrors.KindOf(err) != apperrors.KindUnknown {
		t.Fatalf("Resolve(nil factory result) error = %v", err)
	}
}

func TestFuncAdapter(t *testing.T) {
	t.Parallel()

	called := false
	var e Event = Func(func(context.Context, *ajax.Call, *ajax.Response) error {
		called = true
		return nil
	})
	_ = e.Fire(context.Background(), nil, nil)
	if !called {
		t.Fatal("expected func to be called")
	}
}
