package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tooldir/internal/app"
	"tooldir/internal/domain"
)

type listOptions struct {
	failEmpty bool
}

// withResults runs mutate against the session and prints the refreshed results.
func withResults(opts *cliOptions, list *listOptions, mutate func(*app.Session) error) error {
	session, err := opts.session()
	if err != nil {
		return err
	}
	if mutate != nil {
		if err := mutate(session); err != nil {
			return err
		}
	}
	count, err := printResults(session, opts.jsonOutput)
	if err != nil {
		return err
	}
	if list != nil && list.failEmpty && count == 0 {
		return exitSilent(exitCodeFailure)
	}
	return nil
}

func newListCmd(opts *cliOptions) *cobra.Command {
	list := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the tools matching the current query",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withResults(opts, list, nil)
		},
	}
	cmd.Flags().BoolVar(&list.failEmpty, "fail-empty", false, "exit with status 1 when nothing matches")
	return cmd
}

func newSearchCmd(opts *cliOptions) *cobra.Command {
	list := &listOptions{}
	cmd := &cobra.Command{
		Use:   "search [text...]",
		Short: "Set the search text (no argument clears it)",
		RunE: func(_ *cobra.Command, args []string) error {
			return withResults(opts, list, func(session *app.Session) error {
				session.SetText(strings.Join(args, " "))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&list.failEmpty, "fail-empty", false, "exit with status 1 when nothing matches")
	return cmd
}

func newCategoryCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "category <name>",
		Short: "Toggle a category filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withResults(opts, nil, func(session *app.Session) error {
				session.ToggleCategory(args[0])
				return nil
			})
		},
	}
}

func newTagCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <name>",
		Short: "Toggle a tag filter (tools with any selected tag match)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withResults(opts, nil, func(session *app.Session) error {
				session.ToggleTag(args[0])
				return nil
			})
		},
	}
}

func newSortCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sort <name|trending>",
		Short: "Choose the result order",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			key, err := domain.ParseSortKey(args[0])
			if err != nil {
				return err
			}
			return withResults(opts, nil, func(session *app.Session) error {
				return session.SetSort(key)
			})
		},
	}
}

func newOnlyFavoritesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "only-favorites <true|false>",
		Short: "Restrict results to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			only, err := strconv.ParseBool(args[0])
			if err != nil {
				return domain.E(domain.CodeInvalidArgument, "only-favorites", "expected true or false", err)
			}
			return withResults(opts, nil, func(session *app.Session) error {
				session.SetOnlyFavorites(only)
				return nil
			})
		},
	}
}

func newClearCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset search text, filters, favorites-only and sort",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withResults(opts, nil, func(session *app.Session) error {
				session.ClearAll()
				return nil
			})
		},
	}
}

func newQueryCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "Show the stored query",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			q := session.Query()
			if opts.jsonOutput {
				return writeJSON(map[string]any{
					"query":            q,
					"hasActiveFilters": q.HasActiveFilters(),
				})
			}
			printQuerySummary(q)
			return nil
		},
	}
}
