package data

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
)

func TestRenderResolvesEncodedName(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register("demo.Feed", func(context.Context) (Component, error) {
		return Func(func(context.Context) (string, error) { return `{"items":[]}`, nil }), nil
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	got, err := reg.Render(context.Background(), "demo_Feed")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != `{"items":[]}` {
		t.Fatalf("Render() = %q", got)
	}
}

func TestRenderErrorKinds(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	cause := errors.New("boom")
	_ = reg.Register("demo.Fails", func(context.Context) (Component, error) {
		return Func(func(context.Context) (string, error) { return "", cause }), nil
	})
	_ = reg.Register("demo.NoBuild", func(context.Context) (Component, error) { return nil, cause })
	_ = reg.Register("demo.Nil", func(context.Context) (Component, error) { return nil, nil })

	tests := []struct {
		id   string
		want apperrors.Kind
	}{
		{id: "", want: apperrors.KindInvalidRequest},
		{id: "demo_Missing", want: apperrors.KindNotFound},
		{id: "demo_Fails", want: apperrors.KindUnknown},
		{id: "demo_NoBuild", want: apperrors.KindUnknown},
		{id: "demo_Nil", want: apperrors.KindUnknown},
	}
	for _, tc := range tests {
		if _, err := reg.Render(context.Background(), tc.id); apperrors.KindOf(err) != tc.want {
			t.Fatalf("Render(%q) error = %v, want kind %q", tc.id, err, tc.want)
		}
	}
}

func TestRenderRecoversPanics(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	_ = reg.Register("demo.PanicRender", func(context.Context) (Component, error) {
		return Func(func(context.Context) (string, error) { panic("rows closed") }), nil
	})
	_ = reg.Register("demo.PanicBuild", func(context.Context) (Component, error) { panic("no pool") })

	for _, name := range []string{"demo_PanicRender", "demo_PanicBuild"} {
		got, err := reg.Render(context.Background(), name)
		if err == nil || got != "" {
			t.Fatalf("Render(%s) = %q, %v, want error", name, got, err)
		}
		if kind := apperrors.KindOf(err); kind != apperrors.KindUnknown {
			t.Fatalf("Render(%s) kind = %q, want %q", name, kind, apperrors.KindUnknown)
		}
	}
}
