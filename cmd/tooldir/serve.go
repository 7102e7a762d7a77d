package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tooldir/internal/app"
	"tooldir/internal/domain"
	"tooldir/internal/infra/catalog"
	"tooldir/internal/infra/feed"
	"tooldir/internal/ui/mcpserver"
)

func newWatchCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [file]",
		Short: "Import a feed file now and again every time it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := opts.open()
			if err != nil {
				return err
			}
			path := runtime.Config.Feed.Path
			if len(args) == 1 {
				path = args[0]
			}
			if strings.TrimSpace(path) == "" {
				return exitError{code: exitCodeUsage, message: "a feed file is required (argument or feed.path)"}
			}
			debounce := time.Duration(runtime.Config.Feed.DebounceMillis) * time.Millisecond
			watcher, err := feed.NewWatcher(path, debounce, runtime.Logger)
			if err != nil {
				return err
			}

			importFeed := func(_ context.Context, changed string) error {
				return importFeedFile(runtime, changed, opts.jsonOutput)
			}
			if err := importFeed(cmd.Context(), watcher.Path()); err != nil {
				runtime.Logger.Warn("initial feed import failed", zap.Error(err))
			}

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()
			return serveWithObservability(ctx, runtime, func(ctx context.Context) error {
				return watcher.Run(ctx, importFeed)
			})
		},
	}
}

func importFeedFile(runtime *app.Runtime, path string, jsonOutput bool) error {
	format, err := catalog.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read feed: %w", err)
	}
	report, err := runtime.Session.ImportPayload(data, format)
	if err != nil {
		return err
	}
	return printImportReport(report, jsonOutput)
}

func newMCPCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the catalog as Model Context Protocol tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runtime, err := opts.open()
			if err != nil {
				return err
			}
			server := mcpserver.New(runtime.Session, app.Version, runtime.Logger)

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()
			return serveWithObservability(ctx, runtime, server.Run)
		},
	}
}

// serveWithObservability runs fn next to the metrics endpoint. Whichever
// returns first stops the other.
func serveWithObservability(ctx context.Context, runtime *app.Runtime, fn func(context.Context) error) error {
	group, groupCtx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(groupCtx)
	defer stop()

	group.Go(func() error {
		defer stop()
		return fn(runCtx)
	})
	if runtime.Config.Observability.ListenAddress != "" {
		group.Go(func() error {
			if err := runtime.ServeObservability(runCtx); err != nil {
				return domain.Wrap(domain.CodeUnavailable, "serve observability", err)
			}
			return nil
		})
	}

	err := group.Wait()
	if err != nil && ctx.Err() != nil {
		runtime.Logger.Info("shutting down")
		return nil
	}
	return err
}
