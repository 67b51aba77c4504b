package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aryankumar/hive/internal/config"
	"github.com/aryankumar/hive/internal/util"
	"github.com/spf13/cobra"
)

var (
	cfgFile string

	// cfg is the configuration loaded by initConfig; commands read
	// their defaults from it through conf()
	cfg *config.HiveConfig
)

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hive",
		Short: "Hive - thread-pool concurrency toolkit",
		Long: `Hive is a concurrency toolkit built around a worker pool with tracked
submissions, a parallel-for engine and a cyclic executor. This CLI
drives the library: it benchmarks the pool, demonstrates parallel-for
decomposition and runs cyclic workloads at a fixed rate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	// Define persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hive.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (json, yaml, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output with debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "pool size (0 or negative is an offset from the CPU count)")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newParforCmd())
	rootCmd.AddCommand(newTickCmd())

	return rootCmd
}

// initConfig loads the configuration file and sets up logging
func initConfig(cmd *cobra.Command) error {
	manager := config.NewManager(cfgFile)

	loaded, err := manager.Load()
	if err != nil {
		return util.WrapErrorf(err, "loading configuration")
	}
	cfg = loaded

	// Setup structured logging
	setupLogging(cmd)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		slog.Debug("verbose logging enabled")
		if file := manager.ConfigFileUsed(); file != "" {
			slog.Debug("loaded configuration", "file", file)
		}
	}

	return nil
}

// conf returns the loaded configuration. Commands that skip initConfig
// (completion, help) fall back to the defaults.
func conf() *config.HiveConfig {
	if cfg != nil {
		return cfg
	}
	return config.Default()
}

// setupLogging configures structured logging with slog
func setupLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Set log level based on verbose flag
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if colorDisabled(cmd) {
		// Use JSON handler for no-color mode
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		// Use text handler for colored output
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	// Set default logger
	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// outputFormat resolves the output format from the flag, then the
// loaded configuration.
func outputFormat(cmd *cobra.Command) string {
	if format, _ := cmd.Flags().GetString("output"); format != "" {
		return format
	}
	return conf().Defaults.OutputFormat
}

// colorDisabled resolves color suppression from the flag, then the
// loaded configuration.
func colorDisabled(cmd *cobra.Command) bool {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		return true
	}
	return conf().Defaults.NoColor
}

// workerCount resolves the pool size from the flag, then the loaded
// configuration.
func workerCount(cmd *cobra.Command) int {
	if cmd.Flags().Changed("workers") {
		n, _ := cmd.Flags().GetInt("workers")
		return n
	}
	return conf().Defaults.Workers
}

// resolveDuration reads a duration flag, falling back to a configured
// value.
func resolveDuration(cmd *cobra.Command, flag string, fallback time.Duration) time.Duration {
	if cmd.Flags().Changed(flag) {
		d, _ := cmd.Flags().GetDuration(flag)
		return d
	}
	return fallback
}
