// Command pagescan reads jweb directives from a package and writes the
// registration source that installs the annotated factories.
//
//	//jweb:page url=/about title="About"
//	func aboutPage(ctx context.Context) (*page.Document, error)
//
//	//jweb:event name=demo.PingEvent
//	func pingEvent(ctx context.Context) (event.Event, error)
//
//	//jweb:data name=demo.Clock
//	func clockData(ctx context.Context) (data.Component, error)
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/louisbranch/jweb/internal/services/jweb/page"
)

const (
	directivePrefix = "//jweb:"
	jwebImport      = "github.com/louisbranch/jweb/internal/services/jweb"
	pageImport      = "github.com/louisbranch/jweb/internal/services/jweb/page"
)

type directiveKind string

const (
	kindPage  directiveKind = "page"
	kindEvent directiveKind = "event"
	kindData  directiveKind = "data"
)

type registration struct {
	Kind      directiveKind
	Func      string
	URL       string
	Title     string
	Name      string
	DefinedAt string
}

type scannedPackage struct {
	Name          string
	Dir           string
	Registrations []registration
}

func main() {
	var rootFlag string
	var pattern string
	var outName string
	var funcName string
	flag.StringVar(&rootFlag, "root", "", "module root (defaults to locating go.mod)")
	flag.StringVar(&pattern, "pkg", ".", "package pattern to scan, relative to root")
	flag.StringVar(&outName, "out", "zz_jweb_registrations.go", "file name written into each scanned package")
	flag.StringVar(&funcName, "func", "RegisterGenerated", "name of the generated registration function")
	flag.Parse()

	root, err := resolveRoot(rootFlag)
	if err != nil {
		fatal(err)
	}
	pkgs, err := scan(root, pattern)
	if err != nil {
		fatal(err)
	}
	for _, pkg := range pkgs {
		if len(pkg.Registrations) == 0 {
			continue
		}
		src, err := render(pkg, funcName)
		if err != nil {
			fatal(err)
		}
		target := filepath.Join(pkg.Dir, outName)
		if err := os.WriteFile(target, src, 0o644); err != nil {
			fatal(fmt.Errorf("write %s: %w", target, err))
		}
		fmt.Printf("wrote %s (%d registrations)\n", target, len(pkg.Registrations))
	}
}

func resolveRoot(flagRoot string) (string, error) {
	if flagRoot != "" {
		return filepath.Clean(flagRoot), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working dir: %w", err)
	}
	return findModuleRoot(wd)
}

func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("go.mod not found above %s", start)
}

// scan loads the packages matching pattern and collects their directives.
// Only syntax is loaded; factory signatures are checked by the compiler
// when the generated file is built.
func scan(root, pattern string) ([]scannedPackage, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
		Dir:  root,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", pattern, err)
	}
	var out []scannedPackage
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("load %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		scanned := scannedPackage{Name: pkg.Name}
		if len(pkg.GoFiles) > 0 {
			scanned.Dir = filepath.Dir(pkg.GoFiles[0])
		}
		for i, file := range pkg.Syntax {
			path := ""
			if i < len(pkg.CompiledGoFiles) {
				path = pkg.CompiledGoFiles[i]
			}
			regs, err := fileRegistrations(file, pkg.Name, relativePath(root, path))
			if err != nil {
				return nil, err
			}
			scanned.Registrations = append(scanned.Registrations, regs...)
		}
		sort.SliceStable(scanned.Registrations, func(i, j int) bool {
			a, b := scanned.Registrations[i], scanned.Registrations[j]
			if a.Kind != b.Kind {
				return kindRank(a.Kind) < kindRank(b.Kind)
			}
			return a.key() < b.key()
		})
		if err := checkDuplicates(scanned.Registrations); err != nil {
			return nil, err
		}
		out = append(out, scanned)
	}
	return out, nil
}

func fileRegistrations(file *ast.File, pkgName, definedAt string) ([]registration, error) {
	var regs []registration
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		for _, comment := range fn.Doc.List {
			if !strings.HasPrefix(comment.Text, directivePrefix) {
				continue
			}
			if fn.Recv != nil {
				return nil, fmt.Errorf("%s: %s: directive on method %s", definedAt, comment.Text, fn.Name.Name)
			}
			reg, err := parseDirective(strings.TrimPrefix(comment.Text, directivePrefix))
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", definedAt, fn.Name.Name, err)
			}
			reg.Func = fn.Name.Name
			reg.DefinedAt = definedAt
			if reg.Kind == kindPage && reg.Name == "" {
				reg.Name = pkgName + "." + fn.Name.Name
			}
			regs = append(regs, reg)
		}
	}
	return regs, nil
}

// parseDirective parses "page url=/x title=\"X\"" style directive bodies.
func parseDirective(body string) (registration, error) {
	kind, rest, _ := strings.Cut(strings.TrimSpace(body), " ")
	reg := registration{Kind: directiveKind(kind)}
	switch reg.Kind {
	case kindPage, kindEvent, kindData:
	default:
		return registration{}, fmt.Errorf("unknown directive %q", kind)
	}
	attrs, err := parseAttributes(rest)
	if err != nil {
		return registration{}, err
	}
	for key, value := range attrs {
		switch key {
		case "url":
			reg.URL = value
		case "title":
			reg.Title = value
		case "name":
			reg.Name = value
		default:
			return registration{}, fmt.Errorf("unknown attribute %q", key)
		}
	}
	if reg.Kind != kindPage {
		if reg.Name == "" {
			return registration{}, fmt.Errorf("%s directive requires name", reg.Kind)
		}
		if reg.URL != "" || reg.Title != "" {
			return registration{}, fmt.Errorf("%s directive accepts only name", reg.Kind)
		}
	}
	return reg, nil
}

func parseAttributes(s string) (map[string]string, error) {
	attrs := make(map[string]string)
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return attrs, nil
		}
		key, rest, ok := strings.Cut(s, "=")
		if !ok || key == "" || strings.ContainsAny(key, " \t\"") {
			return nil, fmt.Errorf("malformed attribute near %q", s)
		}
		var value string
		if strings.HasPrefix(rest, `"`) {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %w", key, err)
			}
			value, _ = strconv.Unquote(quoted)
			rest = rest[len(quoted):]
		} else {
			end := strings.IndexAny(rest, " \t")
			if end < 0 {
				end = len(rest)
			}
			value, rest = rest[:end], rest[end:]
		}
		if _, dup := attrs[key]; dup {
			return nil, fmt.Errorf("duplicate attribute %q", key)
		}
		attrs[key] = value
		s = rest
	}
}

func checkDuplicates(regs []registration) error {
	seen := make(map[string]registration)
	for _, reg := range regs {
		k := string(reg.Kind) + " " + reg.key()
		if prev, ok := seen[k]; ok {
			return fmt.Errorf("duplicate %s %q in %s and %s", reg.Kind, reg.key(), prev.DefinedAt, reg.DefinedAt)
		}
		seen[k] = reg
	}
	return nil
}

func (r registration) key() string {
	if r.Kind == kindPage {
		return page.NormalizeURL(r.URL)
	}
	return r.Name
}

func kindRank(k directiveKind) int {
	switch k {
	case kindPage:
		return 0
	case kindEvent:
		return 1
	default:
		return 2
	}
}

func render(pkg scannedPackage, funcName string) ([]byte, error) {
	if pkg.Name == "" {
		return nil, errors.New("package name is required")
	}
	hasPages := false
	for _, reg := range pkg.Registrations {
		if reg.Kind == kindPage {
			hasPages = true
		}
	}

	var b bytes.Buffer
	b.WriteString("// Code generated by pagescan. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg.Name)
	b.WriteString("import (\n")
	fmt.Fprintf(&b, "%q\n", jwebImport)
	if hasPages {
		fmt.Fprintf(&b, "%q\n", pageImport)
	}
	b.WriteString(")\n\n")
	fmt.Fprintf(&b, "// %s installs the factories declared with jweb directives in this package.\n", funcName)
	fmt.Fprintf(&b, "func %s(regs jweb.Registries) error {\n", funcName)
	for _, reg := range pkg.Registrations {
		switch reg.Kind {
		case kindPage:
			fmt.Fprintf(&b, "if _, err := regs.Pages.Register(page.Configuration{URL: %q, Title: %q, Name: %q}, %s); err != nil {\nreturn err\n}\n",
				page.NormalizeURL(reg.URL), reg.Title, reg.Name, reg.Func)
		case kindEvent:
			fmt.Fprintf(&b, "if err := regs.Events.Register(%q, %s); err != nil {\nreturn err\n}\n", reg.Name, reg.Func)
		case kindData:
			fmt.Fprintf(&b, "if err := regs.Data.Register(%q, %s); err != nil {\nreturn err\n}\n", reg.Name, reg.Func)
		}
	}
	b.WriteString("return nil\n}\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s registrations: %w", pkg.Name, err)
	}
	return src, nil
}

func relativePath(root, path string) string {
	if path == "" {
		return ""
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
