package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fosscu/subdomain-checker/internal/checker"
	"github.com/fosscu/subdomain-checker/internal/logging"
	"github.com/fosscu/subdomain-checker/internal/model"
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	ParentDomain   string        `mapstructure:"parent-domain"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	StaleResponses string        `mapstructure:"stale-responses"`
	LogLevel       string        `mapstructure:"log-level"`
	LogFile        string        `mapstructure:"log-file"`
	ConfigPath     string        `mapstructure:"-"` // not from config file
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SUBCHECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("endpoint", model.DefaultEndpoint)
	v.SetDefault("parent-domain", model.DefaultParentDomain)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("stale-responses", checker.ApplyInArrivalOrder.String())
	v.SetDefault("log-level", model.DefaultLogLevel)
	v.SetDefault("log-file", logging.DefaultStatePath("subcheck.log"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "subcheck", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c cliConfig) validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint: %q", c.Endpoint)
	}
	if strings.TrimSpace(c.ParentDomain) == "" {
		return errors.New("parent-domain must not be empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("invalid request-timeout: %s", c.RequestTimeout)
	}
	if _, err := checker.ParseStalePolicy(c.StaleResponses); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// printConfig writes the effective configuration as YAML.
func printConfig(w io.Writer, c cliConfig) error {
	out := map[string]string{
		"endpoint":        c.Endpoint,
		"parent-domain":   c.ParentDomain,
		"request-timeout": c.RequestTimeout.String(),
		"stale-responses": c.StaleResponses,
		"log-level":       c.LogLevel,
		"log-file":        c.LogFile,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
