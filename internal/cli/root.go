// Package cli provides the command-line interface for ptybridge.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ptybridge",
	Short: "Spawn and control a process attached to a pseudo-terminal",
	Long: `ptybridge spawns a child process under a freshly allocated PTY
and gives you a control surface over it: window size, echo, raw mode,
signal delivery, escalated termination, and a cooperative interact
loop that bridges your real terminal to the child.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.config/ptybridge/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (json, text)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME/.config/ptybridge")
		viper.AddConfigPath("/etc/ptybridge")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("PTYBRIDGE")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// GetConfigFile returns the config file being used.
func GetConfigFile() string {
	return viper.ConfigFileUsed()
}
