package html

import (
	"context"
	"fmt"

	"github.com/louisbranch/jweb/internal/ngcode"
)

// ComponentTree collects copies of the Angular components hosted by the tree
// rooted at e. Configuration on plain elements is merged into the nearest
// enclosing component, nested hosts become children, and empty templates are
// filled from the host element's content. Attached components are not
// modified.
func ComponentTree(ctx context.Context, e *Element) ([]*ngcode.Component, error) {
	if e == nil {
		return nil, nil
	}
	var roots []*ngcode.Component
	if err := collect(ctx, e, nil, &roots); err != nil {
		return nil, err
	}
	return roots, nil
}

func collect(ctx context.Context, e *Element, host *ngcode.Component, roots *[]*ngcode.Component) error {
	current := host
	if e.component != nil {
		c := clone(e.component)
		if c.Template == "" && c.Kind == ngcode.KindComponent {
			tmpl, err := e.InnerTemplate(ctx)
			if err != nil {
				return fmt.Errorf("template for %s: %w", c.Name, err)
			}
			c.Template = tmpl
		}
		if host != nil {
			host.AddChild(c)
		} else {
			*roots = append(*roots, c)
		}
		current = c
	}
	if !e.config.Empty() {
		if current == nil {
			return fmt.Errorf("element %s carries component configuration outside any component", e.tag)
		}
		current.Config.Merge(e.config)
	}
	for _, child := range e.children {
		if el, ok := child.(*Element); ok {
			if err := collect(ctx, el, current, roots); err != nil {
				return err
			}
		}
	}
	return nil
}

func clone(src *ngcode.Component) *ngcode.Component {
	c := *src
	c.Children = nil
	c.Styles = append([]string(nil), src.Styles...)
	c.Config = ngcode.Config{}
	c.Config.Merge(src.Config)
	return &c
}
