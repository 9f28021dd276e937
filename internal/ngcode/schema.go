// Package ngcode renders Angular TypeScript sources from component
// configuration attached to server-side component trees.
package ngcode

// Item is one piece of component configuration.
type Item interface {
	applyTo(*Config)
}

// Field is a class member declaration such as "title : string = '';".
type Field struct {
	Value    string
	OnParent bool
}

// Method is a class method including its body.
type Method struct {
	Value    string
	OnParent bool
}

// ConstructorParameter is one constructor parameter such as
// "private http : HttpClient".
type ConstructorParameter struct {
	Value    string
	OnParent bool
}

// ConstructorBody is a statement appended to the constructor body.
type ConstructorBody struct {
	Value    string
	OnParent bool
}

// ImportReference imports Name from the Reference module path.
type ImportReference struct {
	Name      string
	Reference string
	OnParent  bool
}

// ImportModule lists Name in the decorator's imports array.
type ImportModule struct {
	Name     string
	OnParent bool
}

// ComponentReference imports another generated component and, for
// standalone hosts, lists it in the imports array.
type ComponentReference struct {
	Target   *Component
	OnParent bool
}

// Inject declares "ReferenceName = inject(Value);".
type Inject struct {
	Value         string
	ReferenceName string
	OnParent      bool
}

// Input declares an @Input() property.
type Input struct {
	Name string
	Type string
}

// EventOutput declares an @Output() event emitter.
type EventOutput struct {
	Name string
	Type string
}

// Hook identifies an Angular life-cycle interface.
type Hook int

const (
	OnInit Hook = iota
	OnChanges
	DoCheck
	AfterContentInit
	AfterContentChecked
	AfterViewInit
	AfterViewChecked
	OnDestroy
)

var hookNames = [...]string{
	OnInit:              "OnInit",
	OnChanges:           "OnChanges",
	DoCheck:             "DoCheck",
	AfterContentInit:    "AfterContentInit",
	AfterContentChecked: "AfterContentChecked",
	AfterViewInit:       "AfterViewInit",
	AfterViewChecked:    "AfterViewChecked",
	OnDestroy:           "OnDestroy",
}

// String returns the interface name, e.g. "OnInit".
func (h Hook) String() string {
	if h < 0 || int(h) >= len(hookNames) {
		return "Hook(?)"
	}
	return hookNames[h]
}

// Valid reports whether h is a known hook.
func (h Hook) Valid() bool { return h >= 0 && int(h) < len(hookNames) }

// Signature returns the method signature implementing the hook.
func (h Hook) Signature() string {
	if h == OnChanges {
		return "ngOnChanges(changes: SimpleChanges): void"
	}
	return "ng" + h.String() + "(): void"
}

// HookBody is a statement placed in a life-cycle method.
type HookBody struct {
	Hook     Hook
	Value    string
	OnParent bool
}

// Config is the declarative Angular configuration of a component.
type Config struct {
	Fields                []Field
	Methods               []Method
	ConstructorParameters []ConstructorParameter
	ConstructorBodies     []ConstructorBody
	Imports               []ImportReference
	Modules               []ImportModule
	References            []ComponentReference
	Injects               []Inject
	Inputs                []Input
	Outputs               []EventOutput
	Hooks                 []HookBody
}

// Add appends configuration items.
func (c *Config) Add(items ...Item) *Config {
	for _, item := range items {
		if item != nil {
			item.applyTo(c)
		}
	}
	return c
}

// Merge appends every item of other.
func (c *Config) Merge(other Config) {
	c.Fields = append(c.Fields, other.Fields...)
	c.Methods = append(c.Methods, other.Methods...)
	c.ConstructorParameters = append(c.ConstructorParameters, other.ConstructorParameters...)
	c.ConstructorBodies = append(c.ConstructorBodies, other.ConstructorBodies...)
	c.Imports = append(c.Imports, other.Imports...)
	c.Modules = append(c.Modules, other.Modules...)
	c.References = append(c.References, other.References...)
	c.Injects = append(c.Injects, other.Injects...)
	c.Inputs = append(c.Inputs, other.Inputs...)
	c.Outputs = append(c.Outputs, other.Outputs...)
	c.Hooks = append(c.Hooks, other.Hooks...)
}

// Empty reports whether the config holds no items.
func (c Config) Empty() bool {
	return len(c.Fields)+len(c.Methods)+len(c.ConstructorParameters)+len(c.ConstructorBodies)+
		len(c.Imports)+len(c.Modules)+len(c.References)+len(c.Injects)+len(c.Inputs)+
		len(c.Outputs)+len(c.Hooks) == 0
}

// Split separates items kept on the owner from items lifted to the parent.
// Lifted items are returned with OnParent cleared.
func (c Config) Split() (own, parent Config) {
	for _, v := range c.Fields {
		pick(&own.Fields, &parent.Fields, v, v.OnParent, func(x *Field) { x.OnParent = false })
	}
	for _, v := range c.Methods {
		pick(&own.Methods, &parent.Methods, v, v.OnParent, func(x *Method) { x.OnParent = false })
	}
	for _, v := range c.ConstructorParameters {
		pick(&own.ConstructorParameters, &parent.ConstructorParameters, v, v.OnParent, func(x *ConstructorParameter) { x.OnParent = false })
	}
	for _, v := range c.ConstructorBodies {
		pick(&own.ConstructorBodies, &parent.ConstructorBodies, v, v.OnParent, func(x *ConstructorBody) { x.OnParent = false })
	}
	for _, v := range c.Imports {
		pick(&own.Imports, &parent.Imports, v, v.OnParent, func(x *ImportReference) { x.OnParent = false })
	}
	for _, v := range c.Modules {
		pick(&own.Modules, &parent.Modules, v, v.OnParent, func(x *ImportModule) { x.OnParent = false })
	}
	for _, v := range c.References {
		pick(&own.References, &parent.References, v, v.OnParent, func(x *ComponentReference) { x.OnParent = false })
	}
	for _, v := range c.Injects {
		pick(&own.Injects, &parent.Injects, v, v.OnParent, func(x *Inject) { x.OnParent = false })
	}
	for _, v := range c.Hooks {
		pick(&own.Hooks, &parent.Hooks, v, v.OnParent, func(x *HookBody) { x.OnParent = false })
	}
	own.Inputs = append(own.Inputs, c.Inputs...)
	own.Outputs = append(own.Outputs, c.Outputs...)
	return own, parent
}

func pick[T any](own, parent *[]T, v T, onParent bool, clear func(*T)) {
	if !onParent {
		*own = append(*own, v)
		return
	}
	clear(&v)
	*parent = append(*parent, v)
}

func (v Field) applyTo(c *Config)                { c.Fields = append(c.Fields, v) }
func (v Method) applyTo(c *Config)               { c.Methods = append(c.Methods, v) }
func (v ConstructorParameter) applyTo(c *Config) { c.ConstructorParameters = append(c.ConstructorParameters, v) }
func (v ConstructorBody) applyTo(c *Config)      { c.ConstructorBodies = append(c.ConstructorBodies, v) }
func (v ImportReference) applyTo(c *Config)      { c.Imports = append(c.Imports, v) }
func (v ImportModule) applyTo(c *Config)         { c.Modules = append(c.Modules, v) }
func (v ComponentReference) applyTo(c *Config)   { c.References = append(c.References, v) }
func (v Inject) applyTo(c *Config)               { c.Injects = append(c.Injects, v) }
func (v Input) applyTo(c *Config)                { c.Inputs = append(c.Inputs, v) }
func (v EventOutput) applyTo(c *Config)          { c.Outputs = append(c.Outputs, v) }
func (v HookBody) applyTo(c *Config)             { c.Hooks = append(c.Hooks, v) }
