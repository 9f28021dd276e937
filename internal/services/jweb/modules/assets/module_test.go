package assets

import (
	"strings"
	"testing"

	"github.com/louisbranch/jweb/internal/services/jweb/routepath"
)

func TestRenderScriptSubstitutesAndEscapes(t *testing.T) {
	t.Parallel()

	got := RenderScript(map[string]string{
		VarSiteAddress: "example.com",
		VarPageClass:   "demo.HomePage",
		VarUserAgent:   `it's "quoted"`,
	})
	for _, want := range []string{
		"jw.siteAddress = 'example.com';",
		"jw.rootAddress = '';",
		"jw.pageClass = 'demo.HomePage';",
		`userAgent: 'it\'s \"quoted\"'`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("script missing %q", want)
		}
	}
}

func TestBootstrapScriptTargetsEndpoints(t *testing.T) {
	t.Parallel()

	for _, path := range []string{routepath.Ajax, routepath.Data, routepath.WebSocket} {
		if !strings.Contains(bootstrapScript, "'"+path+"'") {
			t.Fatalf("bootstrap script does not reference %s", path)
		}
	}
}

func TestHostname(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"example.com:8080": "example.com",
		"example.com":      "example.com",
		"[::1]:80":         "::1",
	} {
		if got := hostname(in); got != want {
			t.Fatalf("hostname(%q) = %q, want %q", in, got, want)
		}
	}
}
