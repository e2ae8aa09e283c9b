package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ptybridge/ptybridge/internal/config"
	"github.com/ptybridge/ptybridge/internal/logging"
	"github.com/ptybridge/ptybridge/internal/shell"
	"github.com/ptybridge/ptybridge/internal/shell/tui"
)

var (
	dryRun      bool
	interactive bool
)

var runCmd = &cobra.Command{
	Use:   "run -- command [args...]",
	Short: "Spawn a command under a PTY and interact with it",
	Long: `Spawn the configured (or given) command attached to a fresh PTY
and splice your real terminal to it until the child exits or you type
the escape sequence (Ctrl-]).

Use --tui to see a status dashboard (pid, window size, echo) before
attaching.`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate configuration without spawning")
	runCmd.Flags().BoolVarP(&interactive, "tui", "i", false, "show a status dashboard before attaching")
}

func runShell(_ *cobra.Command, args []string) error {
	logCfg := logging.Config{
		Level:  viper.GetString("logging.level"),
		Format: viper.GetString("logging.format"),
	}
	if err := logging.Initialize(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
		logging.Info("using config file", zap.String("path", cfgFile))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(args) > 0 {
		cfg.Shell.Command = args[0]
		cfg.Shell.Args = args[1:]
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	showTUI := interactive || cfg.TUI.Enabled

	if dryRun {
		fmt.Println("Configuration is valid!")
		fmt.Printf("  Command: %s %v\n", cfg.Shell.Command, cfg.Shell.Args)
		fmt.Printf("  Dir: %s\n", cfg.Shell.Dir)
		fmt.Printf("  TUI: %v\n", showTUI)
		fmt.Printf("  Relay log: %v\n", cfg.RelayLog.Enabled)
		return nil
	}

	session, err := shell.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to spawn session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logging.Warn("error closing session", zap.Error(cerr))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	go func() {
		if _, ok := <-sigCh; ok {
			session.Shutdown(true)
		}
	}()
	defer signal.Stop(sigCh)

	if showTUI {
		attach, terr := tui.Run(session.Process())
		if terr != nil {
			logging.Error("tui error", zap.Error(terr))
		}
		if !attach {
			return nil
		}
	}

	status, err := session.Interact()
	if err != nil {
		return fmt.Errorf("interact: %w", err)
	}

	logging.Info("child exited", zap.String("status", status.String()))
	return nil
}
