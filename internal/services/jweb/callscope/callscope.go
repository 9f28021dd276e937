// Package callscope binds per-request values into the active request scope
// and exposes typed accessors for event and component code.
package callscope

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"github.com/louisbranch/jweb/internal/services/jweb/ajax"
	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
	"github.com/louisbranch/jweb/internal/services/jweb/scope"
)

var (
	requestKey   = scope.NewKey[*http.Request]("http.request")
	writerKey    = scope.NewKey[http.ResponseWriter]("http.response")
	callKey      = scope.NewKey[*ajax.Call]("ajax.call")
	responseKey  = scope.NewKey[*ajax.Response]("ajax.response")
	userAgentKey = scope.NewKey[*useragent.UserAgent]("http.user_agent")
)

// Binding carries the transport values for one scope.
type Binding struct {
	Source   scope.Source
	Request  *http.Request
	Writer   http.ResponseWriter
	StreamID string
}

// Bind stores the binding in the scope active on ctx and fills its
// well-known properties.
func Bind(ctx context.Context, b Binding) error {
	sc, ok := scope.FromContext(ctx)
	if !ok {
		return scope.ErrOutOfScope
	}
	props := sc.Properties()
	props.SetSource(b.Source)
	props.Put(scope.PropertyStreamID, b.StreamID)
	if b.Request != nil {
		props.Put(scope.PropertyRoutingContext, b.Request)
		props.Put(scope.PropertyHTTPServerRequest, b.Request)
		if err := scope.Set(ctx, requestKey, b.Request); err != nil {
			return err
		}
	}
	if b.Writer != nil {
		props.Put(scope.PropertyHTTPServerResponse, b.Writer)
		if err := scope.Set(ctx, writerKey, b.Writer); err != nil {
			return err
		}
	}
	return nil
}

// Request returns the HTTP request bound to the scope.
func Request(ctx context.Context) (*http.Request, error) {
	return scope.Provide(ctx, requestKey, func(context.Context) (*http.Request, error) {
		return nil, apperrors.E(apperrors.KindNotFound, "no http request bound to scope")
	})
}

// Writer returns the HTTP response writer bound to the scope. WebSocket
// scopes have none.
func Writer(ctx context.Context) (http.ResponseWriter, error) {
	return scope.Provide(ctx, writerKey, func(context.Context) (http.ResponseWriter, error) {
		return nil, apperrors.E(apperrors.KindNotFound, "no http response bound to scope")
	})
}

// Call returns the scope's AJAX call envelope, creating an empty one.
func Call(ctx context.Context) (*ajax.Call, error) {
	return scope.Provide(ctx, callKey, func(context.Context) (*ajax.Call, error) {
		return &ajax.Call{}, nil
	})
}

// Response returns the scope's AJAX response, creating a successful one.
func Response(ctx context.Context) (*ajax.Response, error) {
	return scope.Provide(ctx, responseKey, func(context.Context) (*ajax.Response, error) {
		return ajax.NewResponse(), nil
	})
}

// UserAgent returns the parsed User-Agent header of the scoped request.
func UserAgent(ctx context.Context) (*useragent.UserAgent, error) {
	return scope.Provide(ctx, userAgentKey, func(ctx context.Context) (*useragent.UserAgent, error) {
		r, err := Request(ctx)
		if err != nil {
			return nil, err
		}
		return useragent.New(r.UserAgent()), nil
	})
}

// Browser returns "name version" for the scoped user agent, or "" when it
// cannot be resolved.
func Browser(ctx context.Context) string {
	ua, err := UserAgent(ctx)
	if err != nil || ua == nil {
		return ""
	}
	name, version := ua.Browser()
	return strings.TrimSpace(name + " " + version)
}

// Header returns a scoped request header, or "" when unavailable.
func Header(ctx context.Context, name string) string {
	r, err := Request(ctx)
	if err != nil || r == nil {
		return ""
	}
	return r.Header.Get(name)
}

// RemoteIP returns the client address of the scoped request without port.
func RemoteIP(ctx context.Context) string {
	r, err := Request(ctx)
	if err != nil || r == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
