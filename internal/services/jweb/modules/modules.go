// Package modules defines the jweb endpoint registry.
package modules

import (
	module "github.com/louisbranch/jweb/internal/services/jweb/module"
	"github.com/louisbranch/jweb/internal/services/jweb/modules/ajax"
	"github.com/louisbranch/jweb/internal/services/jweb/modules/assets"
	"github.com/louisbranch/jweb/internal/services/jweb/modules/data"
	"github.com/louisbranch/jweb/internal/services/jweb/modules/pages"
	"github.com/louisbranch/jweb/internal/services/jweb/modules/socket"
)

// Dependencies aliases the shared module dependencies type.
type Dependencies = module.Dependencies

// Module aliases the module interface contract.
type Module = module.Module

// DefaultModules returns the framework endpoints. The page catch-all is
// included only when bindPages is set.
func DefaultModules(bindPages bool) []Module {
	mods := []Module{
		data.New(),
		assets.NewCSS(),
		ajax.New(),
		assets.NewScript(),
		socket.New(),
	}
	if bindPages {
		mods = append(mods, pages.New())
	}
	return mods
}
