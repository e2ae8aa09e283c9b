// Package config provides configuration types and loading for the
// ptybridge shell driver.
package config

// Config represents the complete application configuration.
type Config struct {
	Shell    ShellConfig    `mapstructure:"shell"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	TUI      TUIConfig      `mapstructure:"tui"`
	RelayLog RelayLogConfig `mapstructure:"relaylog"`
}

// ShellConfig defines the child process a session spawns and attaches
// to a PTY.
type ShellConfig struct {
	Command string            `mapstructure:"command"`
	Args    []string          `mapstructure:"args"`
	Dir     string            `mapstructure:"dir"`
	Env     map[string]string `mapstructure:"env"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// TUIConfig controls the optional status view shown before interact.
type TUIConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RelayLogConfig controls the optional MQTT publication of session
// lifecycle events (start and exit status) — not raw keystrokes.
type RelayLogConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Broker   string `mapstructure:"broker"`
	Topic    string `mapstructure:"topic"`
	ClientID string `mapstructure:"client_id"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{
			Command: "bash",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		TUI: TUIConfig{
			Enabled: false,
		},
		RelayLog: RelayLogConfig{
			Enabled: false,
			Topic:   "ptybridge/sessions",
		},
	}
}
