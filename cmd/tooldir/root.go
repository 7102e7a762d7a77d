package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"tooldir/internal/app"
	"tooldir/internal/infra/telemetry"
)

type cliOptions struct {
	configPath string
	storePath  string
	ephemeral  bool
	jsonOutput bool
	logLevel   string
	logFormat  string
	metricsOut string
	logger     *zap.Logger

	runtime *app.Runtime
	cleanup func()
}

func newCLIOptions() *cliOptions {
	return &cliOptions{logger: zap.NewNop()}
}

func newRootCommand(opts *cliOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "tooldir",
		Short:         "Browse, filter and curate a catalog of OSINT tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (%s)", app.Version, app.Build),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			applyRootFlagBindings(cmd, opts)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.writeMetrics()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.storePath, "store", "", "preferences database path (default $XDG_CONFIG_HOME/tooldir/preferences.db)")
	root.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep preferences in memory only")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output JSON")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (console or json)")
	root.PersistentFlags().StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		newListCmd(opts),
		newSearchCmd(opts),
		newCategoryCmd(opts),
		newTagCmd(opts),
		newSortCmd(opts),
		newOnlyFavoritesCmd(opts),
		newClearCmd(opts),
		newQueryCmd(opts),
		newFavCmd(opts),
		newTagsCmd(opts),
		newCategoriesCmd(opts),
		newImportCmd(opts),
		newReplaceCmd(opts),
		newResetCmd(opts),
		newThemeCmd(opts),
		newPrefsCmd(opts),
		newWatchCmd(opts),
		newMCPCmd(opts),
	)

	return root
}

func applyRootFlagBindings(cmd *cobra.Command, opts *cliOptions) {
	flags := cmd.Flags()
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config":
			opts.configPath, _ = flags.GetString("config")
		case "store":
			opts.storePath, _ = flags.GetString("store")
		case "ephemeral":
			opts.ephemeral, _ = flags.GetBool("ephemeral")
		case "json":
			opts.jsonOutput, _ = flags.GetBool("json")
		case "log-level":
			opts.logLevel, _ = flags.GetString("log-level")
		case "log-format":
			opts.logFormat, _ = flags.GetString("log-format")
		case "metrics-out":
			opts.metricsOut, _ = flags.GetString("metrics-out")
		}
	})
}

// open loads configuration and builds the runtime on first use.
func (o *cliOptions) open() (*app.Runtime, error) {
	if o.runtime != nil {
		return o.runtime, nil
	}

	cfg, err := app.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if level := strings.TrimSpace(o.logLevel); level != "" {
		cfg.Log.Level = level
	}
	if format := strings.TrimSpace(o.logFormat); format != "" {
		cfg.Log.Format = format
	}

	logger, err := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, exitError{code: exitCodeUsage, message: err.Error()}
	}
	o.logger = logger

	runtime, cleanup, err := app.InitializeRuntime(cfg, app.LoggingConfig{
		Logger: logger,
		Source: telemetry.LogSourceCLI,
	}, app.StoreOptions{
		Path:      strings.TrimSpace(o.storePath),
		Ephemeral: o.ephemeral,
	})
	if err != nil {
		return nil, err
	}
	o.runtime = runtime
	o.cleanup = cleanup
	return runtime, nil
}

func (o *cliOptions) session() (*app.Session, error) {
	runtime, err := o.open()
	if err != nil {
		return nil, err
	}
	return runtime.Session, nil
}

func (o *cliOptions) writeMetrics() error {
	if o.metricsOut == "" || o.runtime == nil {
		return nil
	}
	if err := telemetry.WriteTextfile(o.metricsOut, o.runtime.Registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func (o *cliOptions) close() {
	if o.cleanup != nil {
		o.cleanup()
		o.cleanup = nil
	}
	_ = o.logger.Sync()
}
