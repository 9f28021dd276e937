package ngcode

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// Kind selects the Angular decorator rendered for a component.
type Kind int

const (
	KindComponent Kind = iota
	KindDirective
	KindService
)

func (k Kind) decorator() string {
	switch k {
	case KindDirective:
		return "Directive"
	case KindService:
		return "Injectable"
	default:
		return "Component"
	}
}

func (k Kind) suffix() string {
	switch k {
	case KindDirective:
		return "Directive"
	case KindService:
		return "Service"
	default:
		return "Component"
	}
}

func (k Kind) defaultDir() string {
	switch k {
	case KindDirective:
		return "directives"
	case KindService:
		return "services"
	default:
		return "components"
	}
}

// Component describes one generated TypeScript class.
type Component struct {
	// Name is the exported TypeScript class name.
	Name string
	// Selector overrides the derived selector.
	Selector   string
	Kind       Kind
	Standalone bool
	// Template is the inline Angular template.
	Template string
	Styles   []string
	// Dir is the output directory relative to the generation root.
	Dir string
	// Route registers the component in routes.ts when non-empty.
	Route    string
	Config   Config
	Children []*Component
}

// NewComponent returns a standalone @Component.
func NewComponent(name string) *Component {
	return &Component{Name: name, Kind: KindComponent, Standalone: true}
}

// NewDirective returns a standalone @Directive.
func NewDirective(name string) *Component {
	return &Component{Name: name, Kind: KindDirective, Standalone: true}
}

// NewService returns a root-provided @Injectable.
func NewService(name string) *Component {
	return &Component{Name: name, Kind: KindService}
}

// AddChild appends nested components.
func (c *Component) AddChild(children ...*Component) *Component {
	for _, child := range children {
		if child != nil {
			c.Children = append(c.Children, child)
		}
	}
	return c
}

// Validate checks the class name and selector.
func (c *Component) Validate() error {
	if c == nil {
		return fmt.Errorf("component is nil")
	}
	if !isIdentifier(c.Name) {
		return fmt.Errorf("component name %q is not a TypeScript identifier", c.Name)
	}
	if c.Kind != KindService && strings.TrimSpace(c.EffectiveSelector()) == "" {
		return fmt.Errorf("component %s has an empty selector", c.Name)
	}
	for _, h := range c.Config.Hooks {
		if !h.Hook.Valid() {
			return fmt.Errorf("component %s: unknown hook %d", c.Name, int(h.Hook))
		}
	}
	return nil
}

// EffectiveSelector returns Selector or the one derived from Name.
func (c *Component) EffectiveSelector() string {
	if s := strings.TrimSpace(c.Selector); s != "" {
		return s
	}
	base := baseName(c.Name, c.Kind)
	if c.Kind == KindDirective {
		return "[" + lowerCamel(base) + "]"
	}
	return kebab(base)
}

// dir returns the output directory with the kind default applied.
func (c *Component) dir() string {
	if d := strings.Trim(path.Clean("/"+c.Dir), "/"); d != "" {
		return d
	}
	return c.Kind.defaultDir()
}

// FilePath returns the slash-separated output path.
func (c *Component) FilePath() string {
	return path.Join(c.dir(), kindFileName(c.Name, c.Kind))
}

// modulePath returns the output path without the .ts extension.
func (c *Component) modulePath() string {
	return strings.TrimSuffix(c.FilePath(), ".ts")
}

// FileName returns the Angular file name for a component class name,
// e.g. "ExampleDialogComponent" becomes "example-dialog.component.ts".
func FileName(name string) string {
	return kindFileName(name, KindComponent)
}

func kindFileName(name string, kind Kind) string {
	return kebab(baseName(name, kind)) + "." + strings.ToLower(kind.suffix()) + ".ts"
}

func baseName(name string, kind Kind) string {
	trimmed := strings.TrimSuffix(name, kind.suffix())
	if trimmed == "" {
		return name
	}
	return trimmed
}

// relativeImport returns the import path of target as seen from from.
func relativeImport(from, target *Component) string {
	fromParts := strings.Split(from.dir(), "/")
	toParts := strings.Split(target.modulePath(), "/")
	common := 0
	for common < len(fromParts) && common < len(toParts)-1 && fromParts[common] == toParts[common] {
		common++
	}
	var b strings.Builder
	ups := len(fromParts) - common
	if ups == 0 {
		b.WriteString("./")
	}
	for i := 0; i < ups; i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(toParts[common:], "/"))
	return b.String()
}

func kebab(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('-')
			}
		}
		if r == '_' || r == ' ' {
			b.WriteRune('-')
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func lowerCamel(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
