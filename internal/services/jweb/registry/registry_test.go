package registry

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type sampleEvent struct{}

func TestRegisterAndLookupDecodesNames(t *testing.T) {
	t.Parallel()

	reg := New[string]("event")
	if err := reg.Register("demo.ClickEvent", func(context.Context) (string, error) { return "click", nil }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	factory, ok := reg.Lookup("demo_ClickEvent")
	if !ok {
		t.Fatal("expected encoded lookup to resolve")
	}
	got, err := factory(context.Background())
	if err != nil || got != "click" {
		t.Fatalf("factory() = %q, %v", got, err)
	}
	if _, ok := reg.Lookup("demo.Missing"); ok {
		t.Fatal("expected missing lookup to fail")
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	reg := New[int]("data component")
	factory := func(context.Context) (int, error) { return 1, nil }
	if err := reg.Register(" ", factory); err == nil {
		t.Fatal("expected empty name error")
	}
	if err := reg.Register("demo.Feed", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if err := reg.Register("demo.Feed", factory); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register("demo_Feed", factory); err == nil {
		t.Fatal("expected duplicate error for encoded alias")
	}
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()

	reg := New[int]("event")
	factory := func(context.Context) (int, error) { return 0, nil }
	for _, name := range []string{"b.Two", "a.One", "c.Three"} {
		if err := reg.Register(name, factory); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}
	if diff := cmp.Diff([]string{"a.One", "b.Two", "c.Three"}, reg.Names()); diff != "" {
		t.Fatalf("Names() mismatch (-want +got):\n%s", diff)
	}
	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}
}

func TestEncodeDecodeNameOf(t *testing.T) {
	t.Parallel()

	if got := Encode("demo.ClickEvent"); got != "demo_ClickEvent" {
		t.Fatalf("Encode() = %q", got)
	}
	if got := Decode(" demo_ClickEvent "); got != "demo.ClickEvent" {
		t.Fatalf("Decode() = %q", got)
	}
	if got := NameOf(&sampleEvent{}); got != "registry.sampleEvent" {
		t.Fatalf("NameOf(pointer) = %q", got)
	}
	if got := NameOf(sampleEvent{}); got != "registry.sampleEvent" {
		t.Fatalf("NameOf(value) = %q", got)
	}
	if got := NameOf(nil); got != "" {
		t.Fatalf("NameOf(nil) = %q", got)
	}
}
