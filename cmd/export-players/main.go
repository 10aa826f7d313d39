// Package main provides the export-players binary, which converts TShock
// server-side characters into Terraria player documents.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tshock2plr/internal/config"
	"github.com/cory-johannsen/tshock2plr/internal/importer"
	"github.com/cory-johannsen/tshock2plr/internal/observability"
	"github.com/cory-johannsen/tshock2plr/internal/plrdoc"
	"github.com/cory-johannsen/tshock2plr/internal/storage/postgres"
	"github.com/cory-johannsen/tshock2plr/internal/storage/sqlite"
	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
)

// Exit codes.
const (
	exitOK            = 0
	exitPlayersFailed = 1
	exitUsage         = 2
	exitFailed        = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one export and returns the process exit code. Deferred
// cleanup has finished by the time it returns.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("export-players", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "configs/dev.yaml", "path to configuration file")
	names := fs.String("name", "", "comma-separated account names to export")
	all := fs.Bool("all", false, "export every stored character")
	outputDir := fs.String("output", "", "output directory (overrides export.output_dir)")
	workers := fs.Int("workers", 0, "concurrent exports (overrides export.workers)")
	failFast := fs.Bool("fail-fast", false, "stop at the first failed player")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	selected := splitNames(*names)
	if len(selected) == 0 && !*all {
		fmt.Fprintln(stderr, "usage: export-players [-config <file>] (-name <a,b,...> | -all) [-output <dir>] [-workers <n>] [-fail-fast]")
		return exitUsage
	}
	if len(selected) > 0 && *all {
		fmt.Fprintln(stderr, "-name and -all are mutually exclusive")
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return exitFailed
	}
	if *outputDir != "" {
		cfg.Export.OutputDir = *outputDir
	}
	if *workers > 0 {
		cfg.Export.Workers = *workers
	}
	cfg.Export.FailFast = cfg.Export.FailFast || *failFast

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "initializing logger: %v\n", err)
		return exitFailed
	}
	defer func() { _ = observability.Sync(logger) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := item.NewCatalog(cfg.Catalog.AllowModded)
	if cfg.Catalog.Names != "" {
		if err := catalog.LoadNames(cfg.Catalog.Names); err != nil {
			logger.Error("loading item names", zap.Error(err))
			return exitFailed
		}
	}

	src, err := openSource(ctx, cfg.Source)
	if err != nil {
		logger.Error("opening source", zap.String("driver", cfg.Source.Driver), zap.Error(err))
		return exitFailed
	}
	defer src.Close()

	imp := importer.New(src, plrdoc.New(cfg.Export.Template), catalog, logger)
	manifest, err := imp.Run(ctx, selected, importer.Options{
		OutputDir: cfg.Export.OutputDir,
		Version:   cfg.Export.FormatVersion,
		Workers:   cfg.Export.Workers,
		FailFast:  cfg.Export.FailFast,
	})
	if manifest != nil {
		fmt.Fprintf(stdout, "exported %d of %d players to %s in %s\n",
			len(manifest.Players)-manifest.Failed(), len(manifest.Players),
			cfg.Export.OutputDir, manifest.Elapsed)
	}
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		if errors.Is(err, importer.ErrPlayersFailed) {
			return exitPlayersFailed
		}
		return exitFailed
	}
	return exitOK
}

func splitNames(s string) []string {
	var out []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func openSource(ctx context.Context, cfg config.SourceConfig) (importer.Source, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		src, err := sqlite.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		src, err := postgres.NewSource(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.Driver)
	}
}
