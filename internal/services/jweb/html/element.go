// Package html builds server-side component trees that render as HTML
// through templ and can carry Angular component configuration.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/jweb/internal/ngcode"
)

var voidTags = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

// Attribute is one rendered attribute. Angular binding names such as
// "(click)" and "[value]" are allowed.
type Attribute struct {
	Name  string
	Value string
}

// Style is one CSS declaration scoped to the element id.
type Style struct {
	Property string
	Value    string
}

// Element is a node of a server-side component tree.
type Element struct {
	tag        string
	id         string
	classes    []string
	attributes []Attribute
	styles     []Style
	text       string
	children   []templ.Component

	component *ngcode.Component
	config    ngcode.Config
}

// New returns an element with the given tag.
func New(tag string) *Element {
	return &Element{tag: strings.ToLower(strings.TrimSpace(tag))}
}

// Div returns a div element.
func Div() *Element { return New("div") }

// Span returns a span element with text.
func Span(text string) *Element { return New("span").SetText(text) }

// Paragraph returns a p element with text.
func Paragraph(text string) *Element { return New("p").SetText(text) }

// Heading returns an h1-h6 element with text. Levels are clamped.
func Heading(level int, text string) *Element {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return New(fmt.Sprintf("h%d", level)).SetText(text)
}

// Button returns a button element with text.
func Button(text string) *Element {
	return New("button").AddAttribute("type", "button").SetText(text)
}

// Body returns the document body element.
func Body() *Element { return New("body") }

// Tag returns the element tag.
func (e *Element) Tag() string { return e.tag }

// SetTag changes the element tag.
func (e *Element) SetTag(tag string) *Element {
	e.tag = strings.ToLower(strings.TrimSpace(tag))
	return e
}

// ID returns the element id, which may be empty until AssignIDs runs.
func (e *Element) ID() string { return e.id }

// SetID sets the element id.
func (e *Element) SetID(id string) *Element {
	e.id = strings.TrimSpace(id)
	return e
}

// AddClass appends CSS classes, skipping duplicates.
func (e *Element) AddClass(classes ...string) *Element {
	for _, class := range classes {
		class = strings.TrimSpace(class)
		if class == "" || contains(e.classes, class) {
			continue
		}
		e.classes = append(e.classes, class)
	}
	return e
}

// AddAttribute sets an attribute, replacing an existing value.
func (e *Element) AddAttribute(name, value string) *Element {
	name = strings.TrimSpace(name)
	if name == "" {
		return e
	}
	for idx := range e.attributes {
		if e.attributes[idx].Name == name {
			e.attributes[idx].Value = value
			return e
		}
	}
	e.attributes = append(e.attributes, Attribute{Name: name, Value: value})
	return e
}

// Attribute returns a named attribute value.
func (e *Element) Attribute(name string) (string, bool) {
	for _, attr := range e.attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// AddStyle sets a CSS declaration, replacing an existing property.
func (e *Element) AddStyle(property, value string) *Element {
	property = strings.TrimSpace(property)
	if property == "" {
		return e
	}
	for idx := range e.styles {
		if e.styles[idx].Property == property {
			e.styles[idx].Value = strings.TrimSpace(value)
			return e
		}
	}
	e.styles = append(e.styles, Style{Property: property, Value: strings.TrimSpace(value)})
	return e
}

// SetText sets the escaped text rendered before children.
func (e *Element) SetText(text string) *Element {
	e.text = text
	return e
}

// Add appends children. Nil children are skipped.
func (e *Element) Add(children ...templ.Component) *Element {
	for _, child := range children {
		if child == nil {
			continue
		}
		if el, ok := child.(*Element); ok && el == nil {
			continue
		}
		e.children = append(e.children, child)
	}
	return e
}

// Children returns the direct children.
func (e *Element) Children() []templ.Component {
	out := make([]templ.Component, len(e.children))
	copy(out, e.children)
	return out
}

// AsComponent marks the element as the host of an Angular component.
func (e *Element) AsComponent(c *ngcode.Component) *Element {
	e.component = c
	return e
}

// Component returns the attached Angular component, if any.
func (e *Element) Component() *ngcode.Component { return e.component }

// Configure attaches Angular configuration. On a plain element it applies to
// the nearest enclosing component.
func (e *Element) Configure(items ...ngcode.Item) *Element {
	e.config.Add(items...)
	return e
}

// Config returns the configuration attached directly to the element.
func (e *Element) Config() *ngcode.Config { return &e.config }

// AssignIDs gives every element that lacks an id a stable id derived from
// its tag and pre-order position.
func (e *Element) AssignIDs() {
	counts := make(map[string]int)
	e.walk(func(el *Element) {
		if el.id != "" {
			return
		}
		counts[el.tag]++
		el.id = fmt.Sprintf("%s%d", el.tag, counts[el.tag])
	})
}

func (e *Element) walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, child := range e.children {
		if el, ok := child.(*Element); ok {
			el.walk(fn)
		}
	}
}

// Render implements templ.Component.
func (e *Element) Render(ctx context.Context, w io.Writer) error {
	return e.render(ctx, w, false)
}

func (e *Element) render(ctx context.Context, w io.Writer, asTemplate bool) error {
	if e == nil {
		return nil
	}
	if err := e.openTag(w); err != nil {
		return err
	}
	if _, isVoid := voidTags[e.tag]; isVoid {
		return nil
	}
	if err := e.renderContent(ctx, w, asTemplate); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</"+e.tag+">")
	return err
}

func (e *Element) renderContent(ctx context.Context, w io.Writer, asTemplate bool) error {
	if e.text != "" {
		if _, err := io.WriteString(w, templ.EscapeString(e.text)); err != nil {
			return err
		}
	}
	for _, child := range e.children {
		el, ok := child.(*Element)
		switch {
		case ok && asTemplate && el.component != nil:
			if err := el.renderHostTag(w); err != nil {
				return err
			}
		case ok:
			if err := el.render(ctx, w, asTemplate); err != nil {
				return err
			}
		default:
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderHostTag writes the component's selector in place of its content.
func (e *Element) renderHostTag(w io.Writer) error {
	selector := e.component.EffectiveSelector()
	host := &Element{tag: selector, id: e.id, classes: e.classes, attributes: e.attributes}
	if strings.HasPrefix(selector, "[") {
		host.tag = e.tag
		host.attributes = append([]Attribute{{Name: strings.Trim(selector, "[]")}}, e.attributes...)
	}
	if err := host.openTag(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</"+host.tag+">")
	return err
}

func (e *Element) openTag(w io.Writer) error {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(e.tag)
	if e.id != "" {
		b.WriteString(` id="` + templ.EscapeString(e.id) + `"`)
	}
	if len(e.classes) > 0 {
		b.WriteString(` class="` + templ.EscapeString(strings.Join(e.classes, " ")) + `"`)
	}
	for _, attr := range e.attributes {
		if !validAttributeName(attr.Name) {
			return fmt.Errorf("render %s: invalid attribute name %q", e.tag, attr.Name)
		}
		b.WriteString(" " + attr.Name)
		if attr.Value != "" {
			b.WriteString(`="` + templ.EscapeString(attr.Value) + `"`)
		}
	}
	b.WriteString(">")
	_, err := io.WriteString(w, b.String())
	return err
}

// InnerTemplate renders the element's content for use as an Angular
// template: nested component hosts collapse to their selector tags.
func (e *Element) InnerTemplate(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := e.renderContent(ctx, &buf, true); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// String renders the element to a string, returning an HTML comment on error.
func (e *Element) String() string {
	var buf bytes.Buffer
	if err := e.Render(context.Background(), &buf); err != nil {
		return "<!-- " + templ.EscapeString(err.Error()) + " -->"
	}
	return buf.String()
}

// RenderCSS aggregates id-scoped rules for the tree in document order.
// Elements without an id are skipped; call AssignIDs first.
func (e *Element) RenderCSS() string {
	var b strings.Builder
	e.walk(func(el *Element) {
		if el.id == "" || len(el.styles) == 0 {
			return
		}
		b.WriteString("#" + el.id + "{")
		for _, style := range el.styles {
			b.WriteString(style.Property + ":" + style.Value + ";")
		}
		b.WriteString("}\n")
	})
	return b.String()
}

// Classes returns the element classes in sorted order.
func (e *Element) Classes() []string {
	out := append([]string(nil), e.classes...)
	sort.Strings(out)
	return out
}

func validAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '"', '\'', '>', '/', '=', '<':
			return false
		}
	}
	return true
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
