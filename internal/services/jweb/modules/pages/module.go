// Package pages serves registered pages as full HTML documents.
package pages

import (
	"log"
	"net/http"

	"github.com/louisbranch/jweb/internal/services/jweb/dispatch"
	module "github.com/louisbranch/jweb/internal/services/jweb/module"
	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
	"github.com/louisbranch/jweb/internal/services/jweb/platform/httpx"
	"github.com/louisbranch/jweb/internal/services/jweb/routepath"
)

// Module mounts the page catch-all.
type Module struct{}

// New returns the pages module.
func New() Module { return Module{} }

// ID returns the module id.
func (Module) ID() string { return "pages" }

// Mount wires every path not claimed by another module to the page registry.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	h := dispatch.Scoped(deps.Scoper, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		doc, err := dispatch.Document(ctx, deps.Pages, r.URL.Path)
		if err != nil {
			writePageError(w, r, err)
			return
		}
		body, err := doc.HTML(ctx)
		if err != nil {
			writePageError(w, r, err)
			return
		}
		if err := httpx.WriteText(w, httpx.ContentTypeHTML, body); err != nil {
			log.Printf("write page failed path=%s err=%v", r.URL.Path, err)
		}
	})
	return module.Mount{
		Prefix:  routepath.Root,
		Handler: httpx.Chain(h, httpx.RequireMethod(http.MethodGet, http.MethodHead)),
	}, nil
}

func writePageError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("render page failed path=%s request_id=%s err=%v", r.URL.Path, httpx.RequestIDOf(r), err)
	}
	http.Error(w, http.StatusText(status), status)
}
