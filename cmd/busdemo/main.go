// Command busdemo exercises the event bus with the scenarios it is built for:
// priority ordering, cancellation, owner expiry, recursive publishing and
// concurrent publishers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/Leegeev/eventbus/pkg/config"
	"github.com/Leegeev/eventbus/pkg/eventbus"
	"github.com/Leegeev/eventbus/pkg/logger"
)

var configPath = flag.String("config", "", "path to config file (default configs/config.yaml)")

func main() {
	flag.Parse()
	os.Exit(realMain(*configPath))
}

// realMain returns the process exit code so deferred cleanup runs before exit.
func realMain(path string) int {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error occurred while initializing configs: %v\n", err)
		return 1
	}

	log, err := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error occurred while initializing logger: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("demo failed")
		return 1
	}
	log.Info().Msg("All done, exiting")
	return 0
}

// run instantiates the bus with the configured mutex policy. The policy is a
// type parameter of the bus, so each choice is its own instantiation.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	switch cfg.Bus.MutexPolicy {
	case "none":
		bus := eventbus.New[eventbus.NoMutex](eventbus.WithLogger(log))
		return newDemo(bus, cfg, log, false).run(ctx)
	default:
		bus := eventbus.New[eventbus.DefaultMutex](eventbus.WithLogger(log))
		return newDemo(bus, cfg, log, true).run(ctx)
	}
}
