package main

import (
	"fmt"
	"os"

	"github.com/cosmoview-hq/cosmoview-gateway/internal/app"
	"github.com/cosmoview-hq/cosmoview-gateway/internal/config"
	"github.com/cosmoview-hq/cosmoview-gateway/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "explorer failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	explorer, err := app.NewExplorer(cfg)
	if err != nil {
		logger.ErrorObj("failed to initialize explorer", "error", err)
		return err
	}

	return newRootCmd(explorer).Execute()
}
