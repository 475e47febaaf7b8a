package main

import (
	"errors"
	"fmt"
	"io"
	"net"
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

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 0 // a pending check may take as long as the backend does
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the entrypoint.
type appConfig struct {
	Addr           string        `mapstructure:"addr"`
	Endpoint       string        `mapstructure:"endpoint"`
	ParentDomain   string        `mapstructure:"parent-domain"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	StaleResponses string        `mapstructure:"stale-responses"`
	ReadTimeout    time.Duration `mapstructure:"read-timeout"`
	WriteTimeout   time.Duration `mapstructure:"write-timeout"`
	LogLevel       string        `mapstructure:"log-level"`
	LogFile        string        `mapstructure:"log-file"`
	ConfigPath     string        `mapstructure:"-"` // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SUBCHECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("addr", model.DefaultWebAddr)
	v.SetDefault("endpoint", model.DefaultEndpoint)
	v.SetDefault("parent-domain", model.DefaultParentDomain)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("stale-responses", checker.ApplyInArrivalOrder.String())
	v.SetDefault("read-timeout", defaultReadTimeout)
	v.SetDefault("write-timeout", time.Duration(defaultWriteTimeout))
	v.SetDefault("log-level", model.DefaultLogLevel)
	v.SetDefault("log-file", "") // stderr

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

func (c appConfig) validate() error {
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid addr %q: %w", c.Addr, err)
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint: %q", c.Endpoint)
	}
	if strings.TrimSpace(c.ParentDomain) == "" {
		return errors.New("parent-domain must not be empty")
	}
	if c.RequestTimeout < 0 || c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return errors.New("timeouts must not be negative")
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
func printConfig(w io.Writer, c appConfig) error {
	out := map[string]string{
		"addr":            c.Addr,
		"endpoint":        c.Endpoint,
		"parent-domain":   c.ParentDomain,
		"request-timeout": c.RequestTimeout.String(),
		"stale-responses": c.StaleResponses,
		"read-timeout":    c.ReadTimeout.String(),
		"write-timeout":   c.WriteTimeout.String(),
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
