// Package dispatch runs framework calls inside request scopes and maps their
// failures to client-facing responses.
package dispatch

import (
	"context"
	"log"
	"net/http"

	"github.com/louisbranch/jweb/internal/services/jweb/callscope"
	"github.com/louisbranch/jweb/internal/services/jweb/platform/httpx"
	"github.com/louisbranch/jweb/internal/services/jweb/scope"
)

// Scoped wraps next so each request runs inside a fresh scope that is exited
// when next returns or panics.
func Scoped(scoper *scope.Scoper, next http.HandlerFunc) http.Handler {
	if next == nil {
		return http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, sc := scoper.Enter(httpx.RequestContext(r))
		defer sc.Exit()

		r = r.WithContext(ctx)
		if err := callscope.Bind(ctx, callscope.Binding{
			Source:   scope.SourceHTTP,
			Request:  r,
			Writer:   w,
			StreamID: httpx.RequestIDOf(r),
		}); err != nil {
			log.Printf("bind request scope failed path=%s err=%v", r.URL.Path, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		next(w, r)
	})
}

// Within runs fn inside a fresh scope bound to a non-HTTP transport.
func Within(ctx context.Context, scoper *scope.Scoper, b callscope.Binding, fn func(context.Context) error) error {
	return scoper.Within(ctx, func(ctx context.Context, _ *scope.Scope) error {
		if err := callscope.Bind(ctx, b); err != nil {
			return err
		}
		return fn(ctx)
	})
}

// streamID returns the stream id of the active scope for log fields.
func streamID(ctx context.Context) string {
	sc, ok := scope.FromContext(ctx)
	if !ok {
		return ""
	}
	return sc.Properties().String(scope.PropertyStreamID)
}
