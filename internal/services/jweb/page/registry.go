package page

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	platformotel "github.com/louisbranch/jweb/internal/platform/otel"
	"github.com/louisbranch/jweb/internal/services/jweb/routepath"
)

// ErrNotFound reports that no registered page matches a path.
var ErrNotFound = errors.New("page not found")

// Factory builds a page document for one request.
type Factory func(ctx context.Context) (*Document, error)

// Page is a registered page.
type Page struct {
	config  Configuration
	factory Factory
}

// Config returns the normalized page configuration.
func (p *Page) Config() Configuration { return p.config }

// Build creates the page document.
func (p *Page) Build(ctx context.Context) (*Document, error) {
	ctx, span := tracer().Start(ctx, "page.build", trace.WithAttributes(
		attribute.String("jweb.page.url", p.config.URL),
		attribute.String("jweb.page.name", p.config.Name),
	))
	defer span.End()

	doc, err := p.build(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("build page %s: %w", p.config.URL, err)
	}
	if doc == nil {
		err := fmt.Errorf("build page %s: factory returned nil document", p.config.URL)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if strings.TrimSpace(doc.Config.URL) == "" {
		doc.Config.URL = p.config.URL
	}
	if doc.Config.Title == "" {
		doc.Config.Title = p.config.Title
	}
	if doc.Config.Name == "" {
		doc.Config.Name = p.config.Name
	}
	doc.Config = doc.Config.Normalized()
	return doc, nil
}

// build runs the factory, turning a panic into an error.
func (p *Page) build(ctx context.Context) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("factory panicked: %v", rec)
		}
	}()
	return p.factory(ctx)
}

// Registry holds pages keyed by URL.
type Registry struct {
	mu    sync.RWMutex
	pages map[string]*Page
}

// NewRegistry returns an empty page registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]*Page)}
}

// Register adds a page. Duplicate URLs are rejected after normalization.
func (r *Registry) Register(cfg Configuration, factory Factory) (*Page, error) {
	if factory == nil {
		return nil, fmt.Errorf("register page %q: factory is required", cfg.URL)
	}
	cfg = cfg.Normalized()
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.pages[cfg.URL]; ok {
		return nil, fmt.Errorf("register page %q: url already bound to %s", cfg.URL, existing.config.Name)
	}
	p := &Page{config: cfg, factory: factory}
	r.pages[cfg.URL] = p
	return p, nil
}

// Lookup returns the page registered at exactly url.
func (r *Registry) Lookup(url string) (*Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pages[NormalizeURL(url)]
	return p, ok
}

// Match returns the page whose URL is the longest path-segment prefix of
// requestPath. "/" matches every path.
func (r *Registry) Match(requestPath string) (*Page, bool) {
	requestPath = NormalizeURL(requestPath)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best *Page
	for url, p := range r.pages {
		if !matches(url, requestPath) {
			continue
		}
		if best == nil || len(url) > len(best.config.URL) {
			best = p
		}
	}
	return best, best != nil
}

func matches(url, requestPath string) bool {
	if url == routepath.Root || url == requestPath {
		return true
	}
	return strings.HasPrefix(requestPath, url+"/")
}

// Pages returns registered pages ordered by URL.
func (r *Registry) Pages() []*Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Page, 0, len(r.pages))
	for _, p := range r.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].config.URL < out[j].config.URL })
	return out
}

// Len returns the number of registered pages.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}

func tracer() trace.Tracer { return platformotel.Tracer() }
