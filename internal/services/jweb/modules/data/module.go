// Package data serves data component payloads.
package data

import (
	"log"
	"net/http"

	"github.com/louisbranch/jweb/internal/services/jweb/callscope"
	"github.com/louisbranch/jweb/internal/services/jweb/dispatch"
	module "github.com/louisbranch/jweb/internal/services/jweb/module"
	"github.com/louisbranch/jweb/internal/services/jweb/platform/httpx"
	"github.com/louisbranch/jweb/internal/services/jweb/routepath"
)

// Module mounts the data endpoint.
type Module struct{}

// New returns the data module.
func New() Module { return Module{} }

// ID returns the module id.
func (Module) ID() string { return "data" }

// Mount wires the GET handler inside a request scope. Failures are logged
// and the response carries no body.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	h := dispatch.Scoped(deps.Scoper, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		component := r.URL.Query().Get(routepath.ComponentParam)
		if deps.Data == nil {
			log.Printf("data render skipped component=%s err=no data registry", component)
			return
		}
		payload, err := deps.Data.Render(ctx, component)
		if err != nil {
			log.Printf("data render failed component=%s request_id=%s err=%v", component, httpx.RequestIDOf(r), err)
			return
		}
		if deps.Interceptors != nil {
			call, err := callscope.Call(ctx)
			if err != nil {
				log.Printf("data call unavailable component=%s err=%v", component, err)
				return
			}
			call.ClassName = component
			call.Parameters = queryParameters(r)
			resp, err := callscope.Response(ctx)
			if err != nil {
				log.Printf("data response unavailable component=%s err=%v", component, err)
				return
			}
			if err := deps.Interceptors.RunData(ctx, call, resp); err != nil {
				log.Printf("data interceptor failed component=%s request_id=%s err=%v", component, httpx.RequestIDOf(r), err)
				return
			}
		}
		if err := httpx.WriteText(w, httpx.ContentTypeJSON, payload); err != nil {
			log.Printf("write data response failed component=%s err=%v", component, err)
		}
	})
	return module.Mount{
		Prefix:  routepath.Data,
		Handler: httpx.Chain(h, httpx.RequireMethod(http.MethodGet, http.MethodHead)),
	}, nil
}

// queryParameters flattens the query string, keeping the first value.
func queryParameters(r *http.Request) map[string]string {
	query := r.URL.Query()
	if len(query) == 0 {
		return nil
	}
	out := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}
