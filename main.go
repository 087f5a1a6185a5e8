// Package main provides the entry point for the VPN Composer application.
// VPN Composer assembles deployable VPN profiles out of pluggable
// configuration modules (tunnel protocols, DNS, HTTP proxy, IP routing,
// on-demand rules) and narrows provider server listings by facet filters.
//
// Features:
//   - Profile composition with a validating build pipeline
//   - Provider server filtering by category, country, and preset
//   - SQLite-backed profile and dataset storage
//   - Secure credential storage using the system keyring
//   - Command-line interface for scripting and automation
//
// Usage:
//
//	vpn-composer [options]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/vpn-composer/cli"
	"github.com/yllada/vpn-composer/common"
	"github.com/yllada/vpn-composer/config"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")

	// Command flags
	listProfiles  = flag.Bool("list", false, "List stored profiles")
	showProfile   = flag.String("show", "", "Show the modules of a profile by name or id")
	deleteProfile = flag.String("delete", "", "Delete a profile by name or id")
	listServers   = flag.Bool("servers", false, "List provider servers")
	showFacets    = flag.Bool("facets", false, "Show reachable filter facets of a provider")
	importFile    = flag.String("import", "", "Import a provider dataset from a YAML file")
	setCredential = flag.String("set-credential", "", "Store a secret for a module of a profile")

	// Command arguments
	providerID = flag.String("provider", "", "Provider id for server operations")
	category   = flag.String("category", "", "Filter servers by category")
	country    = flag.String("country", "", "Filter servers by country code")
	preset     = flag.String("preset", "", "Filter servers by preset id")
	moduleID   = flag.String("module", "", "Module id for credential operations")
)

func main() {
	flag.Parse()

	// Handle help flag
	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load configuration: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// Initialize logger with structured logging and file output
	logLevel := cfg.Level()
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:      logLevel,
		EnableFile: cfg.EnableFileLog,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals (SIGINT, SIGTERM)
	setupSignalHandler(cancel)

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches the selected CLI command.
func run(ctx context.Context, cfg *config.Config) error {
	app, err := cli.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// Check if context is already cancelled before proceeding
	select {
	case <-ctx.Done():
		common.LogInfo("Operation cancelled before execution")
		return nil
	default:
	}

	chosenProvider := *providerID
	if chosenProvider == "" {
		chosenProvider = cfg.DefaultProviderID
	}

	switch {
	case *listProfiles:
		return app.ListProfiles(ctx)
	case *showProfile != "":
		return app.ShowProfile(ctx, *showProfile)
	case *deleteProfile != "":
		return app.DeleteProfile(ctx, *deleteProfile)
	case *importFile != "":
		return app.ImportDataset(ctx, chosenProvider, *importFile)
	case *listServers:
		return app.ListServers(ctx, chosenProvider, *category, *country, *preset)
	case *showFacets:
		return app.ShowFacets(ctx, chosenProvider, *category, *country, *preset)
	case *setCredential != "":
		return app.SetCredential(ctx, *setCredential, *moduleID)
	default:
		cli.PrintHelp()
		return nil
	}
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// When a signal is received, it cancels the context to allow cleanup.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	}()
}
