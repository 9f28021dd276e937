package jweb

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/jweb/internal/ngcode"
	"github.com/louisbranch/jweb/internal/services/jweb/page"
	"github.com/louisbranch/jweb/internal/services/jweb/scope"
)

// PageComponents builds every registered page in its own scope and returns
// the Angular components their bodies host, in page URL order.
func PageComponents(ctx context.Context, scoper *scope.Scoper, pages *page.Registry) ([]*ngcode.Component, error) {
	if pages == nil {
		return nil, errors.New("page registry is required")
	}
	if scoper == nil {
		scoper = scope.NewScoper()
	}
	var roots []*ngcode.Component
	for _, p := range pages.Pages() {
		err := scoper.Within(ctx, func(ctx context.Context, _ *scope.Scope) error {
			doc, err := p.Build(ctx)
			if err != nil {
				return err
			}
			components, err := doc.Components(ctx)
			if err != nil {
				return err
			}
			roots = append(roots, components...)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("collect components of %s: %w", p.Config().URL, err)
		}
	}
	return roots, nil
}

// GenerateComponents registers app and writes TypeScript for every page
// component under outDir.
func GenerateComponents(ctx context.Context, app Application, outDir string) (*ngcode.Output, error) {
	regs := NewRegistries()
	if app != nil {
		if err := app(regs); err != nil {
			return nil, fmt.Errorf("register application: %w", err)
		}
	}
	roots, err := PageComponents(ctx, scope.NewScoper(), regs.Pages)
	if err != nil {
		return nil, err
	}
	return ngcode.Generator{}.Generate(ctx, roots, outDir)
}
