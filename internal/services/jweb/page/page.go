// Package page registers server-side pages and renders them as full HTML
// documents.
package page

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/jweb/internal/ngcode"
	"github.com/louisbranch/jweb/internal/services/jweb/html"
	"github.com/louisbranch/jweb/internal/services/jweb/routepath"
)

// Configuration declares where a page is served.
type Configuration struct {
	// URL is the page path; empty means the site root.
	URL   string
	Title string
	// Name identifies the page class to the bootstrap script.
	Name string
}

// Normalized applies defaults: URL "/" when empty, a leading slash, no
// trailing slash, and Name defaulting to the URL.
func (c Configuration) Normalized() Configuration {
	c.URL = NormalizeURL(c.URL)
	c.Title = strings.TrimSpace(c.Title)
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		c.Name = c.URL
	}
	return c
}

// NormalizeURL cleans a page URL or request path.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return routepath.Root
	}
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	return path.Clean("/" + raw)
}

// Document is a built page ready for rendering.
type Document struct {
	Config Configuration
	// Lang is the html lang attribute; empty means "en".
	Lang string
	// Head holds extra components rendered after the asset links.
	Head []templ.Component
	Body *html.Element
}

// body returns the body element, wrapping non-body roots.
func (d *Document) body() *html.Element {
	if d.Body == nil {
		d.Body = html.Body()
	}
	if d.Body.Tag() != "body" {
		d.Body = html.Body().Add(d.Body)
	}
	return d.Body
}

// CSS returns the aggregated id-scoped stylesheet of the page body.
func (d *Document) CSS() string {
	b := d.body()
	b.AssignIDs()
	return b.RenderCSS()
}

// Render implements templ.Component for the full document.
func (d *Document) Render(ctx context.Context, w io.Writer) error {
	body := d.body()
	body.AssignIDs()
	lang := strings.TrimSpace(d.Lang)
	if lang == "" {
		lang = "en"
	}
	root := html.New("html").AddAttribute("lang", lang).Add(d.head(), body)
	return templ.Join(templ.Raw("<!DOCTYPE html>"), root).Render(ctx, w)
}

// head builds the document head: charset, title, the page asset links and
// any extra head components.
func (d *Document) head() *html.Element {
	url := d.Config.Normalized().URL
	head := html.New("head").Add(
		html.New("meta").AddAttribute("charset", "utf-8"),
		html.New("title").SetText(d.Config.Title),
		html.New("link").
			AddAttribute("rel", "stylesheet").
			AddAttribute("type", "text/css").
			AddAttribute("href", routepath.CSSFor(url)),
		html.New("script").
			AddAttribute("type", "application/javascript").
			AddAttribute("src", routepath.ScriptFor(url)),
	)
	return head.Add(d.Head...)
}

// HTML renders the full document to a string.
func (d *Document) HTML(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := d.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("render page %s: %w", d.Config.Normalized().URL, err)
	}
	return buf.String(), nil
}

// Components returns the Angular components hosted by the body. Root
// components are routed at the page URL.
func (d *Document) Components(ctx context.Context) ([]*ngcode.Component, error) {
	roots, err := html.ComponentTree(ctx, d.body())
	if err != nil {
		return nil, fmt.Errorf("components of page %s: %w", d.Config.Normalized().URL, err)
	}
	url := d.Config.Normalized().URL
	for _, c := range roots {
		if c.Route == "" {
			c.Route = url
		}
		if c.Dir == "" {
			c.Dir = "pages"
		}
	}
	return roots, nil
}
