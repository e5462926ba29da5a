// Package main is the entry point for the 3GP terrain viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/threegp/internal/app"
	"github.com/Faultbox/threegp/internal/config"
	"github.com/Faultbox/threegp/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== 3GP terrain viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		fatal(cfg, "failed to start viewer", err)
	}

	runErr := a.Run(ctx)
	a.Close()
	if runErr != nil {
		fatal(cfg, "viewer error", runErr)
	}

	logger.Info("viewer closed normally")
}

// fatal logs err, optionally shows it in a message box, and exits.
func fatal(cfg *config.Config, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	if cfg.Window.ErrorDialog {
		dialog.Message("%s:\n\n%v", msg, err).Title(cfg.Window.Title).Error()
	}
	logger.Sync()
	os.Exit(1)
}
