package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tooldir/internal/infra/catalog"
)

func newFavCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fav <id>",
		Short: "Toggle a tool id in favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			id := args[0]
			favorite := session.ToggleFavorite(id)
			if opts.jsonOutput {
				return writeJSON(map[string]any{"id": id, "favorite": favorite})
			}
			if favorite {
				fmt.Fprintf(stdout, "%s added to favorites\n", id)
			} else {
				fmt.Fprintf(stdout, "%s removed from favorites\n", id)
			}
			return nil
		},
	}
}

func newTagsCmd(opts *cliOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show the most frequent tags",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			cloud := session.TagCloud()
			if limit > 0 {
				cloud = session.TopTags(limit)
			}
			if opts.jsonOutput {
				return writeJSON(cloud)
			}
			for _, row := range cloud {
				fmt.Fprintf(stdout, "%4d  %s\n", row.Count, row.Tag)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of tags to show (default from config)")
	return cmd
}

func newCategoriesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and tags usable as filters",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			q := session.Query()
			if opts.jsonOutput {
				return writeJSON(map[string]any{
					"categories": session.Categories(),
					"tags":       session.AllTags(),
					"selected":   map[string]any{"categories": q.Categories, "tags": q.Tags},
				})
			}
			fmt.Fprintln(stdout, "categories:")
			for _, category := range session.Categories() {
				fmt.Fprintf(stdout, "  %s %s\n", checkbox(q.Categories.Contains(category)), category)
			}
			fmt.Fprintln(stdout, "tags:")
			for _, tag := range session.AllTags() {
				fmt.Fprintf(stdout, "  %s %s\n", checkbox(q.Tags.Contains(tag)), tag)
			}
			return nil
		},
	}
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func readImportFile(path, formatName string) ([]byte, catalog.Format, error) {
	var (
		format catalog.Format
		err    error
	)
	if formatName != "" {
		format, err = catalog.ParseFormat(formatName)
	} else {
		format, err = catalog.FormatFromPath(path)
	}
	if err != nil {
		return nil, "", exitError{code: exitCodeUsage, message: err.Error()}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, format, nil
}

func newImportCmd(opts *cliOptions) *cobra.Command {
	var formatName string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge tools from a JSON, YAML or TOML file by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, format, err := readImportFile(args[0], formatName)
			if err != nil {
				return err
			}
			session, err := opts.session()
			if err != nil {
				return err
			}
			report, err := session.ImportPayload(data, format)
			if err != nil {
				return err
			}
			return printImportReport(report, opts.jsonOutput)
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "", "payload format (json, yaml, toml); default from extension")
	return cmd
}

func newReplaceCmd(opts *cliOptions) *cobra.Command {
	var formatName string
	cmd := &cobra.Command{
		Use:   "replace <file>",
		Short: "Replace the whole catalog with the tools in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, format, err := readImportFile(args[0], formatName)
			if err != nil {
				return err
			}
			payload, err := catalog.Decode(data, format)
			if err != nil {
				return err
			}
			session, err := opts.session()
			if err != nil {
				return err
			}
			for _, issue := range payload.Issues {
				opts.logger.Warn("record dropped from replacement",
					zap.Int("index", issue.Index),
					zap.String("reason", issue.Message),
				)
			}
			tools := payload.Tools()
			session.ReplaceCatalog(tools)
			if opts.jsonOutput {
				return writeJSON(map[string]any{"tools": len(tools), "dropped": len(payload.Issues)})
			}
			fmt.Fprintf(stdout, "catalog replaced: %d tools (%d dropped)\n", len(tools), len(payload.Issues))
			return nil
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "", "payload format (json, yaml, toml); default from extension")
	return cmd
}

func newResetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Merge the built-in tools back into the catalog",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			return printImportReport(session.ResetCatalog(), opts.jsonOutput)
		},
	}
}
