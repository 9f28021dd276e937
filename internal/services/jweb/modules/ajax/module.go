// Package ajax serves AJAX call envelopes over HTTP POST.
package ajax

import (
	"io"
	"log"
	"net/http"

	"github.com/louisbranch/jweb/internal/platform/i18n"
	"github.com/louisbranch/jweb/internal/services/jweb/dispatch"
	module "github.com/louisbranch/jweb/internal/services/jweb/module"
	"github.com/louisbranch/jweb/internal/services/jweb/platform/httpx"
	"github.com/louisbranch/jweb/internal/services/jweb/routepath"
)

// MaxBodyBytes caps an AJAX envelope.
const MaxBodyBytes = 1 << 20

// fallbackFailure is written when a response cannot be encoded.
const fallbackFailure = `{"success":false}`

// Module mounts the AJAX endpoint.
type Module struct{}

// New returns the AJAX module.
func New() Module { return Module{} }

// ID returns the module id.
func (Module) ID() string { return "ajax" }

// Mount wires the POST handler inside a request scope.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	d := dispatch.Ajax{Events: deps.Events, Interceptors: deps.Interceptors}
	h := dispatch.Scoped(deps.Scoper, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
		if err != nil {
			log.Printf("read ajax body failed request_id=%s err=%v", httpx.RequestIDOf(r), err)
			body = nil
		}
		resp := d.Dispatch(r.Context(), i18n.ForRequest(r), body)
		payload, err := resp.JSON()
		if err != nil {
			log.Printf("encode ajax response failed request_id=%s err=%v", httpx.RequestIDOf(r), err)
			payload = fallbackFailure
		}
		if err := httpx.WriteText(w, httpx.ContentTypeJSON, payload); err != nil {
			log.Printf("write ajax response failed request_id=%s err=%v", httpx.RequestIDOf(r), err)
		}
	})
	return module.Mount{
		Prefix:  routepath.Ajax,
		Handler: httpx.Chain(h, httpx.RequireMethod(http.MethodPost)),
	}, nil
}
