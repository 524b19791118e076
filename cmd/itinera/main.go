package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/cli"
	"github.com/alexanderramin/itinera/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr so command output on stdout stays pipeable.
	logger := config.SetupLogger(cfg, os.Stderr)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	root := cli.NewRootCmd(&cli.App{
		Validations:    services.Validations,
		Refinements:    services.Refinements,
		Logger:         logger,
		HTTPAddr:       cfg.HTTPAddr,
		MaxRefinements: cfg.MaxRefinements,
		LLMEnabled:     services.LLMEnabled,
		IsInteractive: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	})

	return root.ExecuteContext(ctx)
}
