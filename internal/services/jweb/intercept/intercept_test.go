package intercept

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
)

func TestRunAjaxOrdersBySortOrderThenRegistration(t *testing.T) {
	t.Parallel()

	chains := NewChains()
	order := ""
	mark := func(s string) func(context.Context, *ajax.Call, *ajax.Response) error {
		return func(context.Context, *ajax.Call, *ajax.Response) error {
			order += s
			return nil
		}
	}
	chains.AddAjax(AjaxFunc{Order: 10, Fn: mark("c")})
	chains.AddAjax(AjaxFunc{Order: 1, Fn: mark("a")})
	chains.AddAjax(AjaxFunc{Order: 10, Fn: mark("d")})
	chains.AddAjax(AjaxFunc{Order: 5, Fn: mark("b")})
	chains.AddAjax(nil)

	if err := chains.RunAjax(context.Background(), &ajax.Call{}, ajax.NewResponse()); err != nil {
		t.Fatalf("RunAjax() error = %v", err)
	}
	if order != "abcd" {
		t.Fatalf("order = %q, want %q", order, "abcd")
	}
}

func TestRunDataStopsAtFirstError(t *testing.T) {
	t.Parallel()

	chains := NewChains()
	cause := errors.New("denied")
	ran := 0
	chains.AddData(DataFunc{Order: 1, Fn: func(context.Context, *ajax.Call, *ajax.Response) error { ran++; return cause }})
	chains.AddData(DataFunc{Order: 2, Fn: func(context.Context, *ajax.Call, *ajax.Response) error { ran++; return nil }})
	chains.AddData(DataFunc{Order: 3})

	err := chains.RunData(context.Background(), &ajax.Call{}, ajax.NewResponse())
	if !errors.Is(err, cause) {
		t.Fatalf("RunData() error = %v, want %v", err, cause)
	}
	if ran != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
	if len(chains.Data()) != 3 {
		t.Fatalf("Data() len = %d", len(chains.Data()))
	}
}
