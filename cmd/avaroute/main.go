// Package main is the entry point for avaroute, the routing configuration
// tool. It validates routing documents, re-serializes them, performs
// dry-run lookups and can hold a live table that follows file changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vyrodovalexey/avaroute/internal/observability"
	"github.com/vyrodovalexey/avaroute/internal/util"
)

// Version information (set at build time).
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// cliFlags holds command line flags.
type cliFlags struct {
	configPath   string
	format       string
	logLevel     string
	logFormat    string
	logOutput    string
	check        bool
	dumpFormat   string
	matchHost    string
	matchPath    string
	matchHeaders headerFlags
	serve        bool
	watch        bool
	metricsAddr  string
	showVersion  bool
}

// matchRequested returns true if any dry-run lookup flag was given.
func (f *cliFlags) matchRequested() bool {
	return f.matchHost != "" || f.matchPath != "" || len(f.matchHeaders) > 0
}

func main() {
	flags, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if flags.showVersion {
		printVersion(os.Stdout)
		return
	}

	initLogger(flags)
	logger := observability.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flags, os.Stdout, logger); err != nil {
		if util.IsConfigError(err) {
			logger.Error("invalid routing configuration", observability.Error(err))
		} else {
			logger.Error("avaroute failed", observability.Error(err))
		}
		_ = logger.Sync()
		stop()
		os.Exit(1)
	}
}

// parseFlags parses command line flags. Defaults come from the
// environment where a variable is defined for the flag.
func parseFlags(fs *flag.FlagSet, args []string) (cliFlags, error) {
	var flags cliFlags

	fs.StringVar(&flags.configPath, "config", getEnvOrDefault("AVAROUTE_CONFIG_PATH", "configs/routes.yaml"),
		"Path to the routing document")
	fs.StringVar(&flags.format, "format", "",
		"Document format (yaml, json, toml); detected from the file extension when empty")
	fs.StringVar(&flags.logLevel, "log-level", getEnvOrDefault("AVAROUTE_LOG_LEVEL", "info"),
		"Log level (debug, info, warn, error)")
	fs.StringVar(&flags.logFormat, "log-format", getEnvOrDefault("AVAROUTE_LOG_FORMAT", "json"),
		"Log format (json, console)")
	fs.StringVar(&flags.logOutput, "log-output", getEnvOrDefault("AVAROUTE_LOG_OUTPUT", "stderr"),
		"Log output (stderr, stdout or a file path, rotated by size)")
	fs.BoolVar(&flags.check, "check", false, "Validate the routing document and exit")
	fs.StringVar(&flags.dumpFormat, "dump", "", "Re-serialize the routing table to stdout in the given format")
	fs.StringVar(&flags.matchHost, "match-host", "", "Host of a dry-run lookup")
	fs.StringVar(&flags.matchPath, "match-path", "", "Path of a dry-run lookup")
	fs.Var(&flags.matchHeaders, "match-header", "Header of a dry-run lookup as Name=Value (repeatable)")
	fs.BoolVar(&flags.serve, "serve", false, "Hold the routing table and serve metrics and health until stopped")
	fs.BoolVar(&flags.watch, "watch", getEnvBool("AVAROUTE_WATCH", false),
		"Reload the routing table when the document changes (with -serve)")
	fs.StringVar(&flags.metricsAddr, "metrics-addr", getEnvOrDefault("AVAROUTE_METRICS_ADDR", ":9090"),
		"Listen address of the metrics and health server (with -serve)")
	fs.BoolVar(&flags.showVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}

	if err := util.ValidateNonEmpty(flags.configPath, "-config"); err != nil {
		return cliFlags{}, err
	}

	// AVAROUTE_WATCH only applies to serve mode; an explicit -watch
	// without -serve is an error.
	if flags.watch && !flags.serve {
		watchSet := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "watch" {
				watchSet = true
			}
		})
		if watchSet {
			return cliFlags{}, errors.New("-watch requires -serve")
		}
		flags.watch = false
	}

	return flags, nil
}

// printVersion prints version information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "avaroute version %s\n", version)
	fmt.Fprintf(w, "  Build time: %s\n", buildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", gitCommit)
}

// initLogger installs the global logger. Logs default to stderr since
// stdout carries command output.
func initLogger(flags cliFlags) {
	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  flags.logLevel,
		Format: flags.logFormat,
		Output: flags.logOutput,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	observability.SetGlobalLogger(logger)
}

// run loads the routing document and performs the requested action.
// Without an action flag it behaves like -check.
func run(ctx context.Context, flags cliFlags, stdout io.Writer, logger observability.Logger) error {
	metrics := observability.NewMetrics("avaroute")
	metrics.SetBuildInfo(version, gitCommit, buildTime)

	logger.Info("starting avaroute",
		observability.String("version", version),
		observability.String("config", flags.configPath),
	)

	table, err := loadTable(flags, logger, metrics)
	if err != nil {
		return err
	}

	switch {
	case flags.serve:
		return serve(ctx, flags, table, metrics, logger)
	case flags.check:
		return checkTable(stdout, table)
	case flags.dumpFormat != "":
		return dumpTable(stdout, table, flags.dumpFormat)
	case flags.matchRequested():
		return matchRequest(stdout, table, flags)
	default:
		return checkTable(stdout, table)
	}
}
