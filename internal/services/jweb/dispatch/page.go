package dispatch

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/jweb/internal/services/jweb/platform/errors"
	"github.com/louisbranch/jweb/internal/services/jweb/page"
	"github.com/louisbranch/jweb/internal/services/jweb/routepath"
	"github.com/louisbranch/jweb/internal/services/jweb/scope"
)

var documentKey = scope.NewKey[*page.Document]("page.document")

// CurrentPageURL picks the page an asset request belongs to: the page query
// parameter, then the Referer path, then the site root.
func CurrentPageURL(r *http.Request) string {
	if r == nil {
		return routepath.Root
	}
	if p := strings.TrimSpace(r.URL.Query().Get(routepath.PageParam)); p != "" {
		return page.NormalizeURL(p)
	}
	if ref := strings.TrimSpace(r.Referer()); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Path != "" {
			return page.NormalizeURL(u.Path)
		}
	}
	return routepath.Root
}

// Document builds the page matching requestPath once per scope.
func Document(ctx context.Context, pages *page.Registry, requestPath string) (*page.Document, error) {
	return scope.Provide(ctx, documentKey, func(ctx context.Context) (*page.Document, error) {
		if pages == nil {
			return nil, apperrors.E(apperrors.KindUnavailable, "no page registry configured")
		}
		p, ok := pages.Match(requestPath)
		if !ok {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "no page matches "+page.NormalizeURL(requestPath), page.ErrNotFound)
		}
		return p.Build(ctx)
	})
}
