// Package module defines the endpoint contract used by jweb composition.
package module

import (
	"net/http"

	"github.com/louisbranch/jweb/internal/services/jweb/data"
	"github.com/louisbranch/jweb/internal/services/jweb/event"
	"github.com/louisbranch/jweb/internal/services/jweb/intercept"
	"github.com/louisbranch/jweb/internal/services/jweb/page"
	"github.com/louisbranch/jweb/internal/services/jweb/scope"
)

// Dependencies carries the registries shared by endpoint modules.
type Dependencies struct {
	Scoper       *scope.Scoper
	Pages        *page.Registry
	Events       *event.Registry
	Data         *data.Registry
	Interceptors *intercept.Chains
	// SiteRoot overrides the root address handed to the bootstrap script.
	SiteRoot string
}

// Mount describes a module route mount. Prefix is a ServeMux pattern;
// a trailing slash mounts a subtree.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by jweb composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
