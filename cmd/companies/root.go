package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/companysearch/internal/app"
	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/core"
	"github.com/JonMunkholm/companysearch/internal/logging"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	source  string
	verbose bool
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if core.IsUserFacing(err) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", core.FormatUserError(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "companies",
		Short:         "Search the company registry",
		Long:          "Search the company registry by legal name (RAZON SOCIAL), case-insensitive substring match.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.source, "source", "", "dataset URL or path (overrides DATASET_URL)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level to stderr")

	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newTUICmd(opts))

	return rootCmd
}

// loadConfig reads .env and the environment, with --source taking
// precedence over DATASET_URL.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	// Load keeps variables already set in the environment
	_ = godotenv.Load()

	return config.LoadFrom(func(key string) string {
		if key == "DATASET_URL" && opts.source != "" {
			return opts.source
		}
		return os.Getenv(key)
	})
}

// setup loads configuration, routes logs to logOut and builds the service.
func setup(ctx context.Context, opts *globalOptions, logOut io.Writer) (*core.Service, func(), error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	slog.SetDefault(logging.New(logOut, level, cfg.Logging.Format))

	return app.NewService(ctx, cfg, nil)
}
