package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/npratt/agentshell/internal/config"
	"github.com/npratt/agentshell/internal/shutdown"
	"github.com/npratt/agentshell/internal/tui"
)

var version = "dev"

const followShutdownTimeout = 2 * time.Second

// loadConfig loads the layered config. Flags bound with bindFlags are
// already visible to viper, so no per-flag overrides are needed here.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// readLines reads script lines from f.
func readLines(f *os.File) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return lines, nil
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "agentshell",
		Short: "Agentic AI assistant shell",
		Long: `agentshell is a five-screen terminal mockup of an agentic AI assistant:
goal decomposition, tool orchestration, dual-LLM validation and DataVault
context offload.

Every interaction is local and simulated. Actions emit events that can be
journaled to disk and replayed with "agentshell events".`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool(FlagVerbose) {
				logLevel.Set(slog.LevelDebug)
				logger.Debug("verbose logging enabled")
			}
		},
	}

	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .agentshell/config.yaml)")
	rootCmd.PersistentFlags().String(FlagJournalFile, "", "Event journal path")
	rootCmd.PersistentFlags().String(FlagScreen, "", "Initial screen (name or 1-5)")
	rootCmd.PersistentFlags().Bool(FlagJournal, false, "Write events to the journal")
	bindFlags(rootCmd.PersistentFlags())

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agentshell %s\n", version)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the shell",
		Long: `Start the interactive shell.

When stdin or stdout is not a terminal, or --headless is set, the shell reads
one command per line from stdin and prints each resulting event instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			headless := viper.GetBool(FlagHeadless) || !interactive()
			mode := "tui"
			if headless {
				mode = "headless"
			}

			// TUI mode: keep logs off the alt screen.
			appLogger := logger
			if !headless {
				tuiLog, err := SetupTUILogger(cfg.Paths.DebugLog, logLevel, cfg.LogRotation)
				if err != nil {
					return err
				}
				defer func() { _ = tuiLog.Close() }()
				appLogger = tuiLog.Logger
				slog.SetDefault(appLogger)
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, cfg, appLogger)
			if err != nil {
				return err
			}

			appLogger.Info("agentshell starting",
				"version", version,
				"mode", mode,
				"screen", a.session.Screen(),
				"journal", cfg.Journal.Enabled,
			)

			uiEvents := a.router.SubscribeBuffered(1000)
			a.begin(mode)

			quitReason := "input closed"
			ui := tui.New(a.session, uiEvents,
				tui.WithHeader(cfg.UI),
				tui.WithLogger(appLogger),
				tui.WithOnQuit(func() { quitReason = "user quit" }),
			)

			var runErr error
			if headless {
				runErr = ui.RunHeadless(ctx)
			} else {
				runErr = ui.Run(ctx)
			}

			a.router.Unsubscribe(uiEvents)
			a.end(quitReason)
			if err := a.close(); err != nil {
				appLogger.Warn("failed to close journal", "error", err)
			}

			appLogger.Info("agentshell stopped", "reason", quitReason)
			return runErr
		},
	}

	runCmd.Flags().Bool(FlagHeadless, false, "Read commands from stdin instead of starting the UI")
	bindFlags(runCmd.Flags())

	scriptCmd := &cobra.Command{
		Use:   "script [command...]",
		Short: "Run shell commands and print the resulting state",
		Long: `Run shell commands against a fresh session and print each result followed
by the active screen. Each argument is one command; with no arguments,
commands are read from stdin, one per line.

Commands: cycle <step>, run, clear, validate, snapshot, purge,
screen <name|1-5>, show [screen].`,
		Example: `  agentshell script "cycle plan" run "screen tooling"
  echo validate | agentshell script --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			lines := args
			if len(lines) == 0 {
				if lines, err = readLines(os.Stdin); err != nil {
					return err
				}
			}

			return runScript(cmd.Context(), cmd.OutOrStdout(), cfg, lines, viper.GetBool(FlagJSON), logger)
		},
	}

	scriptCmd.Flags().Bool(FlagJSON, false, "Output as JSON")
	bindFlags(scriptCmd.Flags())

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "View recent journal events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if viper.GetBool(FlagFollow) {
				return shutdown.RunWithGracefulShutdown(cmd.Context(), logger, followShutdownTimeout,
					func(ctx context.Context) error {
						return tailFollow(ctx, out, cfg.Paths.Journal, cfg.UI.TimeFormat)
					}, nil)
			}
			return tailLast(out, cfg.Paths.Journal, viper.GetInt(FlagCount), cfg.UI.TimeFormat)
		},
	}

	eventsCmd.Flags().Bool(FlagFollow, false, "Follow event stream (like tail -f)")
	eventsCmd.Flags().Int(FlagCount, 20, "Number of recent events to show")
	bindFlags(eventsCmd.Flags())

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(eventsCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
