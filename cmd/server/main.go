package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"emberhold/pkg/items"
	"emberhold/pkg/logging"
	"emberhold/pkg/server"
	"emberhold/pkg/shared/config"
	"emberhold/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	if cfg.Items.Catalog != "" {
		n, err := items.LoadCatalog(cfg.Items.Catalog)
		if err != nil {
			return fmt.Errorf("load item catalog: %w", err)
		}
		log.WithField("items", n).Info("Loaded item catalog.")
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()
	log.WithField("backend", cfg.Storage.Backend).Info("Storage ready.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewGameServer(cfg, store, log).Run(ctx)
}
