// Package nggen parses code generation flags and writes the demo
// application's Angular sources.
package nggen

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	entrypoint "github.com/louisbranch/jweb/internal/platform/cmd"
	"github.com/louisbranch/jweb/internal/services/jweb"
	"github.com/louisbranch/jweb/internal/services/jweb/demo"
)

// Config holds nggen command configuration.
type Config struct {
	OutDir string `env:"JWEB_NGGEN_OUT" envDefault:"web/src/app"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Directory receiving generated TypeScript")
	}); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates TypeScript for every demo page component.
func Run(ctx context.Context, cfg Config) error {
	if strings.TrimSpace(cfg.OutDir) == "" {
		return errors.New("output directory is required")
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceNgGen, func(ctx context.Context) error {
		out, err := jweb.GenerateComponents(ctx, demo.New().Register, cfg.OutDir)
		if err != nil {
			return fmt.Errorf("generate components: %w", err)
		}
		for _, f := range out.Files {
			log.Printf("wrote file=%s", f.Path)
		}
		return nil
	})
}
