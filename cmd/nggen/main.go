// Command nggen writes the Angular sources for the jweb demo pages.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	nggencmd "github.com/louisbranch/jweb/internal/cmd/nggen"
)

func main() {
	cfg, err := nggencmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[NGGEN] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := nggencmd.Run(ctx, cfg); err != nil {
		log.Fatalf("generate: %v", err)
	}
}
