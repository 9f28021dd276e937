package page

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/louisbranch/jweb/internal/ngcode"
	"github.com/louisbranch/jweb/internal/services/jweb/html"
)

func staticPage(title string) Factory {
	return func(context.Context) (*Document, error) {
		return &Document{Body: html.Body().Add(html.Heading(1, title))}, nil
	}
}

func TestConfigurationDefaultsToRoot(t *testing.T) {
	t.Parallel()

	cfg := Configuration{}.Normalized()
	if cfg.URL != "/" {
		t.Fatalf("URL = %q, want %q", cfg.URL, "/")
	}
	if cfg.Name != "/" {
		t.Fatalf("Name = %q, want %q", cfg.Name, "/")
	}
	if got := (Configuration{URL: "rabbit/"}).Normalized().URL; got != "/rabbit" {
		t.Fatalf("URL = %q, want %q", got, "/rabbit")
	}
}

func TestRegistryEmptyURLRegistersRoot(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if _, err := r.Register(Configuration{Title: "Home"}, staticPage("home")); err != nil {
		t.Fatalf("register: %v", err)
	}
	p, ok := r.Lookup("/")
	if !ok {
		t.Fatal("expected page at /")
	}
	if p.Config().Title != "Home" {
		t.Fatalf("title = %q", p.Config().Title)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if _, err := r.Register(Configuration{URL: "/a"}, staticPage("a")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := r.Register(Configuration{URL: "/a/"}, staticPage("b")); err == nil {
		t.Fatal("expected duplicate url error")
	}
	if _, err := r.Register(Configuration{URL: "/b"}, nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
}

func TestRegistryMatchLongestPrefix(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, url := range []string{"/", "/admin", "/admin/users"} {
		if _, err := r.Register(Configuration{URL: url}, staticPage(url)); err != nil {
			t.Fatalf("register %s: %v", url, err)
		}
	}
	tests := []struct {
		path string
		want string
	}{
		{path: "", want: "/"},
		{path: "/", want: "/"},
		{path: "/other", want: "/"},
		{path: "/admin", want: "/admin"},
		{path: "/admin/settings", want: "/admin"},
		{path: "/administrator", want: "/"},
		{path: "/admin/users/7", want: "/admin/users"},
		{path: "/admin/users?x=1", want: "/admin/users"},
	}
	for _, tc := range tests {
		p, ok := r.Match(tc.path)
		if !ok {
			t.Fatalf("Match(%q) found nothing", tc.path)
		}
		if got := p.Config().URL; got != tc.want {
			t.Fatalf("Match(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}

	empty := NewRegistry()
	if _, ok := empty.Match("/"); ok {
		t.Fatal("expected no match in empty registry")
	}
}

func TestPageBuildAppliesConfiguration(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	p, err := r.Register(Configuration{URL: "/rabbit", Title: "Rabbit", Name: "demo.RabbitPage"}, staticPage("x"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	doc, err := p.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if doc.Config.URL != "/rabbit" || doc.Config.Title != "Rabbit" || doc.Config.Name != "demo.RabbitPage" {
		t.Fatalf("config = %+v", doc.Config)
	}
}

func TestPageBuildErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := NewRegistry()
	failing, _ := r.Register(Configuration{URL: "/fail"}, func(context.Context) (*Document, error) { return nil, boom })
	if _, err := failing.Build(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	nilDoc, _ := r.Register(Configuration{URL: "/nil"}, func(context.Context) (*Document, error) { return nil, nil })
	if _, err := nilDoc.Build(context.Background()); err == nil {
		t.Fatal("expected nil document error")
	}
}

func TestPageBuildRecoversFactoryPanic(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	p, _ := r.Register(Configuration{URL: "/panic"}, func(context.Context) (*Document, error) { panic("no template") })
	doc, err := p.Build(context.Background())
	if err == nil || doc != nil {
		t.Fatalf("Build() = %v, %v, want error", doc, err)
	}
	if !strings.Contains(err.Error(), "no template") {
		t.Fatalf("err = %v, want panic value", err)
	}
}

func TestDocumentRender(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Config: Configuration{URL: "/rabbit", Title: "Rabbit & Co"},
		Head:   []templ.Component{templ.Raw(`<meta name="x" content="y">`)},
		Body:   html.Div().AddStyle("color", "red").Add(html.Paragraph("hello")),
	}
	got, err := doc.HTML(context.Background())
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	for _, want := range []string{
		`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
		`<title>Rabbit &amp; Co</title>`,
		`<link rel="stylesheet" type="text/css" href="/jwcss?page=%2Frabbit">`,
		`<script type="application/javascript" src="/jwscript?page=%2Frabbit"></script>`,
		`<meta name="x" content="y"></head>`,
		`<body id="body1"><div id="div1"><p id="p1">hello</p></div></body></html>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("document missing %q:\n%s", want, got)
		}
	}
	if css := doc.CSS(); css != "#div1{color:red;}\n" {
		t.Fatalf("css = %q", css)
	}
}

func TestDocumentComponentsRouteAtPageURL(t *testing.T) {
	t.Parallel()

	host := ngcode.NewComponent("RabbitMQPage")
	doc := &Document{
		Config: Configuration{URL: "/rabbit"},
		Body:   html.Body().Add(html.Div().AsComponent(host).Add(html.Paragraph("queue"))),
	}
	roots, err := doc.Components(context.Background())
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(roots))
	}
	if roots[0].Route != "/rabbit" || roots[0].Dir != "pages" {
		t.Fatalf("root = %+v", roots[0])
	}
	if host.Route != "" {
		t.Fatal("attached component must not be modified")
	}
}
