package ngcode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RoutesFile is the generated router configuration file name.
const RoutesFile = "routes.ts"

// File is one generated source file.
type File struct {
	Path    string
	Content string
}

// Output holds generated files in deterministic path order.
type Output struct {
	Files []File
}

// File looks up a generated file by slash path.
func (o *Output) File(path string) (File, bool) {
	for _, f := range o.Files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

// Generator renders component trees to TypeScript files.
type Generator struct{}

// Build renders every component reachable from roots plus routes.ts.
// Components are identified by class name; the first occurrence is
// rendered, while every occurrence contributes its route.
func (Generator) Build(ctx context.Context, roots []*Component) (*Output, error) {
	byPath := make(map[string]*Component)
	var order, routed []*Component
	var visit func(*Component) error
	visit = func(c *Component) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c == nil {
			return nil
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.Kind == KindComponent && strings.TrimSpace(c.Route) != "" {
			routed = append(routed, c)
		}
		p := c.FilePath()
		if existing, ok := byPath[p]; ok {
			if existing.Name != c.Name {
				return fmt.Errorf("duplicate component path %s (%s)", p, c.Name)
			}
			return nil
		}
		byPath[p] = c
		order = append(order, c)
		for _, child := range c.Children {
			if err := visit(child); err != nil {
				return err
			}
		}
		for _, ref := range c.Config.References {
			if err := visit(ref.Target); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}

	out := &Output{}
	for _, c := range order {
		src, err := Render(c)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, File{Path: c.FilePath(), Content: src})
	}
	out.Files = append(out.Files, File{Path: RoutesFile, Content: renderRoutes(routed)})
	sort.Slice(out.Files, func(i, j int) bool { return out.Files[i].Path < out.Files[j].Path })
	return out, nil
}

// Generate builds the files and writes them under outDir.
func (g Generator) Generate(ctx context.Context, roots []*Component, outDir string) (*Output, error) {
	out, err := g.Build(ctx, roots)
	if err != nil {
		return nil, err
	}
	if err := out.Write(outDir); err != nil {
		return nil, err
	}
	return out, nil
}

// Write stores every file under outDir, creating directories as needed.
func (o *Output) Write(outDir string) error {
	if strings.TrimSpace(outDir) == "" {
		return fmt.Errorf("output directory is required")
	}
	for _, f := range o.Files {
		target := filepath.Join(outDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
	}
	return nil
}

func renderRoutes(components []*Component) string {
	type route struct {
		path string
		c    *Component
	}
	var routes []route
	seen := make(map[string]struct{})
	imported := make(map[string]struct{})
	var imports []*Component
	for _, c := range components {
		if strings.TrimSpace(c.Route) == "" || c.Kind != KindComponent {
			continue
		}
		r := route{path: strings.Trim(strings.TrimSpace(c.Route), "/"), c: c}
		if _, ok := seen[r.path+"\x00"+c.Name]; ok {
			continue
		}
		seen[r.path+"\x00"+c.Name] = struct{}{}
		routes = append(routes, r)
		if _, ok := imported[c.Name]; !ok {
			imported[c.Name] = struct{}{}
			imports = append(imports, c)
		}
	}
	sort.SliceStable(routes, func(i, j int) bool { return routes[i].path < routes[j].path })

	var b strings.Builder
	b.WriteString("import {Routes} from '@angular/router';\n")
	sort.SliceStable(imports, func(i, j int) bool { return imports[i].Name < imports[j].Name })
	for _, c := range imports {
		fmt.Fprintf(&b, "import {%s} from '%s';\n", c.Name, "./"+c.modulePath())
	}
	b.WriteString("\nexport const routes: Routes = [\n")
	for _, r := range routes {
		fmt.Fprintf(&b, "\t{path: '%s', component: %s},\n", escapeQuote(r.path), r.c.Name)
	}
	b.WriteString("];\n")
	return b.String()
}
