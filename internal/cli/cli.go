// Package cli implements the command-line interface for larksync.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/atino-ops/larksync/internal/app"
	"github.com/atino-ops/larksync/internal/config"
	"github.com/atino-ops/larksync/pkg/logging"
)

// Run executes the CLI with the given arguments.
func Run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: larksync <command> [options]\ncommands: revenue, qrcode")
	}

	switch args[0] {
	case "revenue":
		return runRevenue(args[1:])
	case "qrcode":
		return runQRCode(args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func runRevenue(args []string) error {
	fs := flag.NewFlagSet("revenue", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-friendly console logging")
	days := fs.Int("days", 0, "how many past days to sync (default from SYNC_DAYS_BACK)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logging.Init(*debug, *human)
	cfg := config.Load()
	if *days > 0 {
		cfg.DaysBack = *days
	}

	return app.RunRevenue(context.Background(), cfg)
}

func runQRCode(args []string) error {
	fs := flag.NewFlagSet("qrcode", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-friendly console logging")
	workers := fs.Int("workers", 0, "worker pool size (default from SYNC_MAX_WORKERS)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logging.Init(*debug, *human)
	cfg := config.Load()
	if *workers > 0 {
		cfg.MaxWorkers = *workers
	}

	return app.RunQRCode(context.Background(), cfg)
}
