package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fosscu/subdomain-checker/internal/availability"
	"github.com/fosscu/subdomain-checker/internal/checker"
	"github.com/fosscu/subdomain-checker/internal/logging"
	"github.com/fosscu/subdomain-checker/internal/tui"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var endpoint string
	var showVersion bool
	var showConfig bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/subcheck/config.yml)")
	flag.StringVar(&endpoint, "endpoint", "", "override availability backend base URL")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.BoolVar(&showConfig, "print-config", false, "print the effective configuration and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("subcheck - FOSSCU Subdomain Checker\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if endpoint != "" {
		cfg.Endpoint = endpoint
		if err := cfg.validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if showConfig {
		if err := printConfig(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	// The TUI owns the terminal, so logs go to a file.
	logger, closeLog, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	defer closeLog()

	client, err := availability.NewClient(cfg.Endpoint,
		availability.WithTimeout(cfg.RequestTimeout),
		availability.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	policy, err := checker.ParseStalePolicy(cfg.StaleResponses)
	if err != nil {
		return err
	}

	ctrl := checker.New(context.Background(), client, checker.WithStalePolicy(policy))
	defer ctrl.Close()

	logger.Info("starting checker",
		slog.String("endpoint", client.Endpoint()),
		slog.String("parent_domain", cfg.ParentDomain),
		slog.String("stale_responses", policy.String()),
		slog.String("version", version),
	)

	app := tui.NewApp(
		tui.NewCheckerPage(ctrl, cfg.ParentDomain),
		tui.NewHelpPage(client.Endpoint(), policy.String()),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
