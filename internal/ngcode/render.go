package ngcode

import (
	"fmt"
	"sort"
	"strings"
)

const angularCore = "@angular/core"

// Resolve returns the configuration rendered for c: its own items, items
// its direct children lift with OnParent, and a reference to each child.
func Resolve(c *Component) Config {
	own, _ := c.Config.Split()
	for _, child := range c.Children {
		if child == nil {
			continue
		}
		_, lifted := child.Config.Split()
		own.Merge(lifted)
		own.References = append(own.References, ComponentReference{Target: child})
	}
	return own
}

// Render returns the TypeScript source of c.
func Render(c *Component) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	cfg := Resolve(c)
	for _, ref := range cfg.References {
		if err := ref.Target.Validate(); err != nil {
			return "", fmt.Errorf("render %s reference: %w", c.Name, err)
		}
	}

	var b strings.Builder
	writeImports(&b, c, cfg)
	writeDecorator(&b, c, cfg)
	writeClass(&b, c, cfg)
	return b.String(), nil
}

type importSet struct {
	byRef map[string]map[string]struct{}
}

func (s *importSet) add(name, ref string) {
	name, ref = strings.TrimSpace(name), strings.TrimSpace(ref)
	if name == "" || ref == "" {
		return
	}
	if s.byRef == nil {
		s.byRef = make(map[string]map[string]struct{})
	}
	names, ok := s.byRef[ref]
	if !ok {
		names = make(map[string]struct{})
		s.byRef[ref] = names
	}
	for _, part := range strings.Split(name, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names[part] = struct{}{}
		}
	}
}

// sortedRefs orders package imports before relative ones.
func (s *importSet) sortedRefs() []string {
	refs := make([]string, 0, len(s.byRef))
	for ref := range s.byRef {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		ri, rj := strings.HasPrefix(refs[i], "."), strings.HasPrefix(refs[j], ".")
		if ri != rj {
			return !ri
		}
		return refs[i] < refs[j]
	})
	return refs
}

func writeImports(b *strings.Builder, c *Component, cfg Config) {
	var set importSet
	set.add(c.Kind.decorator(), angularCore)
	for _, h := range hooksInOrder(cfg.Hooks) {
		set.add(h.String(), angularCore)
		if h == OnChanges {
			set.add("SimpleChanges", angularCore)
		}
	}
	if len(cfg.Inputs) > 0 {
		set.add("Input", angularCore)
	}
	if len(cfg.Outputs) > 0 {
		set.add("Output, EventEmitter", angularCore)
	}
	if len(cfg.Injects) > 0 {
		set.add("inject", angularCore)
	}
	for _, imp := range cfg.Imports {
		set.add(imp.Name, imp.Reference)
	}
	for _, ref := range cfg.References {
		if ref.Target == c {
			continue
		}
		set.add(ref.Target.Name, relativeImport(c, ref.Target))
	}

	for _, ref := range set.sortedRefs() {
		names := make([]string, 0, len(set.byRef[ref]))
		for name := range set.byRef[ref] {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(b, "import {%s} from '%s';\n", strings.Join(names, ", "), ref)
	}
	b.WriteString("\n")
}

func writeDecorator(b *strings.Builder, c *Component, cfg Config) {
	if c.Kind == KindService {
		b.WriteString("@Injectable({\n\tprovidedIn: 'root'\n})\n")
		return
	}
	var props []string
	props = append(props, fmt.Sprintf("selector: '%s'", escapeQuote(c.EffectiveSelector())))
	props = append(props, fmt.Sprintf("standalone: %t", c.Standalone))
	if c.Standalone {
		if modules := decoratorImports(c, cfg); len(modules) > 0 {
			props = append(props, "imports: ["+strings.Join(modules, ", ")+"]")
		}
	}
	if c.Kind == KindComponent {
		props = append(props, "template: `"+escapeTemplate(c.Template)+"`")
		if len(c.Styles) > 0 {
			styles := make([]string, 0, len(c.Styles))
			for _, s := range c.Styles {
				styles = append(styles, "`"+escapeTemplate(s)+"`")
			}
			props = append(props, "styles: ["+strings.Join(styles, ", ")+"]")
		}
	}
	fmt.Fprintf(b, "@%s({\n\t%s\n})\n", c.Kind.decorator(), strings.Join(props, ",\n\t"))
}

// decoratorImports lists modules then referenced components and directives.
func decoratorImports(c *Component, cfg Config) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, m := range cfg.Modules {
		add(m.Name)
	}
	for _, ref := range cfg.References {
		if ref.Target == c || ref.Target.Kind == KindService {
			continue
		}
		add(ref.Target.Name)
	}
	return out
}

func writeClass(b *strings.Builder, c *Component, cfg Config) {
	hooks := hooksInOrder(cfg.Hooks)
	fmt.Fprintf(b, "export class %s", c.Name)
	if len(hooks) > 0 {
		names := make([]string, 0, len(hooks))
		for _, h := range hooks {
			names = append(names, h.String())
		}
		fmt.Fprintf(b, " implements %s", strings.Join(names, ", "))
	}
	b.WriteString(" {\n")

	var sections []string
	if members := classMembers(cfg); len(members) > 0 {
		sections = append(sections, strings.Join(members, "\n"))
	}
	if ctor := constructor(cfg); ctor != "" {
		sections = append(sections, ctor)
	}
	for _, h := range hooks {
		sections = append(sections, hookMethod(h, cfg.Hooks))
	}
	for _, m := range dedupe(methodValues(cfg.Methods)) {
		sections = append(sections, indent(m, 1))
	}
	b.WriteString(strings.Join(sections, "\n\n"))
	if len(sections) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}\n")
}

func classMembers(cfg Config) []string {
	var out []string
	for _, f := range dedupe(fieldValues(cfg.Fields)) {
		out = append(out, "\t"+terminate(f))
	}
	for _, in := range cfg.Inputs {
		out = append(out, fmt.Sprintf("\t@Input() %s!: %s;", in.Name, typeOrAny(in.Type)))
	}
	for _, o := range cfg.Outputs {
		out = append(out, fmt.Sprintf("\t@Output() %s = new EventEmitter<%s>();", o.Name, typeOrAny(o.Type)))
	}
	var injects []string
	for _, inj := range cfg.Injects {
		if strings.TrimSpace(inj.Value) == "" || strings.TrimSpace(inj.ReferenceName) == "" {
			continue
		}
		injects = append(injects, fmt.Sprintf("%s = inject(%s);", strings.TrimSpace(inj.ReferenceName), strings.TrimSpace(inj.Value)))
	}
	for _, inj := range dedupe(injects) {
		out = append(out, "\t"+inj)
	}
	return out
}

func constructor(cfg Config) string {
	var params, body []string
	for _, p := range cfg.ConstructorParameters {
		params = append(params, p.Value)
	}
	for _, s := range cfg.ConstructorBodies {
		body = append(body, s.Value)
	}
	params, body = dedupe(params), dedupe(body)
	if len(params) == 0 && len(body) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\tconstructor(%s) {\n", strings.Join(params, ", "))
	for _, s := range body {
		b.WriteString(indent(s, 2))
		b.WriteString("\n")
	}
	b.WriteString("\t}")
	return b.String()
}

func hookMethod(h Hook, bodies []HookBody) string {
	var lines []string
	for _, hb := range bodies {
		if hb.Hook == h {
			lines = append(lines, hb.Value)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\t%s {\n", h.Signature())
	for _, line := range dedupe(lines) {
		b.WriteString(indent(line, 2))
		b.WriteString("\n")
	}
	b.WriteString("\t}")
	return b.String()
}

func hooksInOrder(bodies []HookBody) []Hook {
	present := make(map[Hook]bool)
	for _, hb := range bodies {
		present[hb.Hook] = true
	}
	var out []Hook
	for h := OnInit; h <= OnDestroy; h++ {
		if present[h] {
			out = append(out, h)
		}
	}
	return out
}

func fieldValues(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Value)
	}
	return out
}

func methodValues(methods []Method) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, m.Value)
	}
	return out
}

// dedupe trims values and drops empties and repeats, keeping first order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func indent(text string, depth int) string {
	prefix := strings.Repeat("\t", depth)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			lines[i] = prefix + line
		} else {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

func terminate(value string) string {
	if strings.HasSuffix(value, ";") || strings.HasSuffix(value, "}") {
		return value
	}
	return value + ";"
}

func typeOrAny(t string) string {
	if t = strings.TrimSpace(t); t != "" {
		return t
	}
	return "any"
}

func escapeTemplate(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return strings.ReplaceAll(s, "${", "\\${")
}

func escapeQuote(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
