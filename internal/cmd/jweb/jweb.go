// Package jweb parses jweb server flags and launches the server.
package jweb

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/jweb/internal/platform/cmd"
	jwebserver "github.com/louisbranch/jweb/internal/services/jweb"
	"github.com/louisbranch/jweb/internal/services/jweb/demo"
)

// Config holds jweb command configuration.
type Config struct {
	HTTPAddr   string `env:"JWEB_HTTP_ADDR" envDefault:"localhost:8080"`
	HealthAddr string `env:"JWEB_GRPC_HEALTH_ADDR"`
	BindPages  bool   `env:"BIND_JW_PAGES" envDefault:"true"`
	SiteRoot   string `env:"JWEB_SITE_ROOT"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.HealthAddr, "health-addr", cfg.HealthAddr, "gRPC health listen address (empty disables)")
	fs.BoolVar(&cfg.BindPages, "bind-pages", cfg.BindPages, "Mount registered pages")
	fs.StringVar(&cfg.SiteRoot, "site-root", cfg.SiteRoot, "Public site address used by the bootstrap script")
}

// Run starts the jweb server with the demo application.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := jwebserver.NewServer(ctx, serverConfig(cfg))
		if err != nil {
			return fmt.Errorf("init jweb server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve jweb: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config) jwebserver.Config {
	return jwebserver.Config{
		HTTPAddr:    cfg.HTTPAddr,
		HealthAddr:  cfg.HealthAddr,
		BindPages:   cfg.BindPages,
		SiteRoot:    cfg.SiteRoot,
		Application: demo.New().Register,
	}
}
