package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads the configuration from viper and returns a Config struct.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if cmd := viper.GetString("shell.command"); cmd != "" {
		cfg.Shell.Command = cmd
	}
	if args := viper.GetStringSlice("shell.args"); len(args) > 0 {
		cfg.Shell.Args = args
	}
	cfg.Shell.Dir = viper.GetString("shell.dir")
	cfg.Shell.Env = viper.GetStringMapString("shell.env")

	if level := viper.GetString("logging.level"); level != "" {
		cfg.Logging.Level = level
	}
	if format := viper.GetString("logging.format"); format != "" {
		cfg.Logging.Format = format
	}

	cfg.TUI.Enabled = viper.GetBool("tui.enabled")

	cfg.RelayLog.Enabled = viper.GetBool("relaylog.enabled")
	if broker := viper.GetString("relaylog.broker"); broker != "" {
		cfg.RelayLog.Broker = broker
	}
	if topic := viper.GetString("relaylog.topic"); topic != "" {
		cfg.RelayLog.Topic = topic
	}
	cfg.RelayLog.ClientID = viper.GetString("relaylog.client_id")

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Shell.Command == "" {
		return fmt.Errorf("shell.command is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}
	if c.RelayLog.Enabled && c.RelayLog.Broker == "" {
		return fmt.Errorf("relaylog.broker is required when relaylog.enabled is true")
	}
	return nil
}
