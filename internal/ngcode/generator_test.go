package ngcode

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() []*Component {
	svc := NewService("SocketClientService")
	dialog := NewComponent("ExampleDialogComponent")
	home := NewComponent("HomePage")
	home.Dir = "pages"
	home.Route = "/"
	home.AddChild(dialog)
	home.Config.Add(ComponentReference{Target: svc})
	rabbit := NewComponent("RabbitMQPage")
	rabbit.Dir = "pages"
	rabbit.Route = "/rabbit"
	return []*Component{home, rabbit}
}

func TestGeneratorBuild(t *testing.T) {
	t.Parallel()

	out, err := Generator{}.Build(context.Background(), sampleTree())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var paths []string
	for _, f := range out.Files {
		paths = append(paths, f.Path)
	}
	want := []string{
		"components/example-dialog.component.ts",
		"pages/home-page.component.ts",
		"pages/rabbit-mq-page.component.ts",
		"routes.ts",
		"services/socket-client.service.ts",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	routes, ok := out.File(RoutesFile)
	if !ok {
		t.Fatal("missing routes.ts")
	}
	wantRoutes := "import {Routes} from '@angular/router';\n" +
		"import {HomePage} from './pages/home-page.component';\n" +
		"import {RabbitMQPage} from './pages/rabbit-mq-page.component';\n" +
		"\n" +
		"export const routes: Routes = [\n" +
		"\t{path: '', component: HomePage},\n" +
		"\t{path: 'rabbit', component: RabbitMQPage},\n" +
		"];\n"
	if routes.Content != wantRoutes {
		t.Fatalf("routes mismatch:\n%s", routes.Content)
	}

	home, _ := out.File("pages/home-page.component.ts")
	if !strings.Contains(home.Content, "import {SocketClientService} from '../services/socket-client.service';") {
		t.Fatalf("home missing service import:\n%s", home.Content)
	}
	if strings.Contains(home.Content, "imports: [ExampleDialogComponent, SocketClientService]") {
		t.Fatalf("services must not be listed in imports array:\n%s", home.Content)
	}
}

func TestGeneratorBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Generator{}.Build(context.Background(), sampleTree())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := Generator{}.Build(context.Background(), sampleTree())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("builds differ (-first +second):\n%s", diff)
	}
}

func TestGeneratorRoutesSharedRootOnEveryPage(t *testing.T) {
	t.Parallel()

	home := NewComponent("ShellComponent")
	home.Dir, home.Route = "pages", "/"
	admin := NewComponent("ShellComponent")
	admin.Dir, admin.Route = "pages", "/admin"

	out, err := Generator{}.Build(context.Background(), []*Component{home, admin, home})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	routes, _ := out.File(RoutesFile)
	want := "import {Routes} from '@angular/router';\n" +
		"import {ShellComponent} from './pages/shell.component';\n" +
		"\n" +
		"export const routes: Routes = [\n" +
		"\t{path: '', component: ShellComponent},\n" +
		"\t{path: 'admin', component: ShellComponent},\n" +
		"];\n"
	if diff := cmp.Diff(want, routes.Content); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
	if got := len(out.Files); got != 2 {
		t.Fatalf("files = %d, want 2", got)
	}
}

func TestGeneratorRejectsDuplicatePaths(t *testing.T) {
	t.Parallel()

	_, err := Generator{}.Build(context.Background(), []*Component{
		NewComponent("ExampleComponent"),
		NewComponent("Example"),
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate component path") {
		t.Fatalf("expected duplicate path error, got %v", err)
	}
}

func TestGeneratorHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Generator{}).Build(ctx, sampleTree()); err == nil {
		t.Fatal("expected context error")
	}
}

func TestGeneratorGenerateWritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out, err := Generator{}.Generate(context.Background(), sampleTree(), dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, f := range out.Files {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Path)))
		if err != nil {
			t.Fatalf("read %s: %v", f.Path, err)
		}
		if string(data) != f.Content {
			t.Fatalf("file %s content mismatch", f.Path)
		}
	}
	if err := (&Output{}).Write(""); err == nil {
		t.Fatal("expected error for empty output directory")
	}
}
