// Package assets serves the per-page stylesheet and the bootstrap script.
package assets

import (
	_ "embed"
	"log"
	"net"
	"net/http"
	"strings"
	"text/template"

	"github.com/louisbranch/jweb/internal/services/jweb/callscope"
	"github.com/louisbranch/jweb/internal/services/jweb/dispatch"
	module "github.com/louisbranch/jweb/internal/services/jweb/module"
	"github.com/louisbranch/jweb/internal/services/jweb/platform/httpx"
	"github.com/louisbranch/jweb/internal/services/jweb/routepath"
)

//go:embed jwscript.js
var bootstrapScript string

// Script placeholders substituted per request.
const (
	VarSiteAddress = "SITEADDRESSINSERT"
	VarRootAddress = "ROOTADDRESSINSERT"
	VarPageClass   = "PAGECLASS"
	VarUserAgent   = "%USERAGENT%"
	VarRemoteIP    = "%MYIP%"
	VarReferer     = "%REFERER%"
	VarBrowser     = "%BROWSER%"
)

// CSS mounts the current page stylesheet endpoint.
type CSS struct{}

// NewCSS returns the stylesheet module.
func NewCSS() CSS { return CSS{} }

// ID returns the module id.
func (CSS) ID() string { return "css" }

// Mount wires the stylesheet handler. A page that cannot be resolved yields
// an empty stylesheet.
func (CSS) Mount(deps module.Dependencies) (module.Mount, error) {
	h := dispatch.Scoped(deps.Scoper, func(w http.ResponseWriter, r *http.Request) {
		pageURL := dispatch.CurrentPageURL(r)
		css := ""
		doc, err := dispatch.Document(r.Context(), deps.Pages, pageURL)
		if err != nil {
			log.Printf("resolve page css failed page=%s request_id=%s err=%v", pageURL, httpx.RequestIDOf(r), err)
		} else {
			css = doc.CSS()
		}
		if err := httpx.WriteText(w, httpx.ContentTypeCSS, css); err != nil {
			log.Printf("write css failed page=%s err=%v", pageURL, err)
		}
	})
	return module.Mount{
		Prefix:  routepath.CSS,
		Handler: httpx.Chain(h, httpx.RequireMethod(http.MethodGet, http.MethodHead)),
	}, nil
}

// Script mounts the bootstrap script endpoint.
type Script struct{}

// NewScript returns the bootstrap script module.
func NewScript() Script { return Script{} }

// ID returns the module id.
func (Script) ID() string { return "script" }

// Mount wires the script handler.
func (Script) Mount(deps module.Dependencies) (module.Mount, error) {
	h := dispatch.Scoped(deps.Scoper, func(w http.ResponseWriter, r *http.Request) {
		body := RenderScript(Variables(r, deps))
		if err := httpx.WriteText(w, httpx.ContentTypeJavaScript, body); err != nil {
			log.Printf("write script failed request_id=%s err=%v", httpx.RequestIDOf(r), err)
		}
	})
	return module.Mount{
		Prefix:  routepath.Script,
		Handler: httpx.Chain(h, httpx.RequireMethod(http.MethodGet, http.MethodHead)),
	}, nil
}

// Variables resolves the script placeholders for a scoped request. Values
// that cannot be resolved are empty.
func Variables(r *http.Request, deps module.Dependencies) map[string]string {
	ctx := r.Context()
	host := hostname(r.Host)
	root := strings.TrimSpace(deps.SiteRoot)
	if root == "" {
		root = host
	}
	return map[string]string{
		VarSiteAddress: host,
		VarRootAddress: root,
		VarPageClass:   pageClass(r, deps),
		VarUserAgent:   callscope.Header(ctx, "User-Agent"),
		VarRemoteIP:    callscope.RemoteIP(ctx),
		VarReferer:     callscope.Header(ctx, "Referer"),
		VarBrowser:     callscope.Browser(ctx),
	}
}

func pageClass(r *http.Request, deps module.Dependencies) string {
	pageURL := dispatch.CurrentPageURL(r)
	doc, err := dispatch.Document(r.Context(), deps.Pages, pageURL)
	if err != nil {
		log.Printf("resolve page class failed page=%s request_id=%s err=%v", pageURL, httpx.RequestIDOf(r), err)
		return ""
	}
	return doc.Config.Name
}

// RenderScript substitutes vars into the bootstrap script. Values are
// escaped for single-quoted JavaScript strings.
func RenderScript(vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for _, key := range []string{VarSiteAddress, VarRootAddress, VarPageClass, VarUserAgent, VarRemoteIP, VarReferer, VarBrowser} {
		pairs = append(pairs, key, template.JSEscapeString(vars[key]))
	}
	return strings.NewReplacer(pairs...).Replace(bootstrapScript)
}

func hostname(hostport string) string {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		return strings.TrimSpace(hostport)
	}
	return host
}
