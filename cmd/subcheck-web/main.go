package main

import (
	"flag"
	"fmt"
	"os"
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
	var addr string
	var endpoint string
	var showVersion bool
	var showConfig bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/subcheck/config.yml)")
	flag.StringVar(&addr, "addr", "", "override listen address (host:port)")
	flag.StringVar(&endpoint, "endpoint", "", "override availability backend base URL")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.BoolVar(&showConfig, "print-config", false, "print the effective configuration and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("subcheck-web - FOSSCU Subdomain Checker (web)\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if addr != "" {
		cfg.Addr = addr
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if showConfig {
		if err := printConfig(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runServer(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
