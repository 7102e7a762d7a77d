package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tooldir/internal/domain"
)

func newThemeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the stored theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(_ *cobra.Command, args []string) error {
			session, err := opts.session()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				switch strings.ToLower(args[0]) {
				case "dark":
					session.SetDark(true)
				case "light":
					session.SetDark(false)
				case "toggle":
					session.ToggleDark()
				default:
					return domain.E(domain.CodeInvalidArgument, "theme", "expected dark, light or toggle", nil)
				}
			}
			theme := "light"
			if session.Dark() {
				theme = "dark"
			}
			if opts.jsonOutput {
				return writeJSON(map[string]any{"theme": theme, "dark": session.Dark()})
			}
			fmt.Fprintln(stdout, theme)
			return nil
		},
	}
}

func newPrefsCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or clear stored preferences",
	}
	cmd.AddCommand(newPrefsShowCmd(opts), newPrefsResetCmd(opts))
	return cmd
}

func newPrefsShowCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every stored preference slot",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runtime, err := opts.open()
			if err != nil {
				return err
			}
			snapshot, err := runtime.Slots.Snapshot()
			if err != nil {
				return domain.Wrap(domain.CodeUnavailable, "read preferences", err)
			}
			if opts.jsonOutput {
				return writeJSON(snapshot)
			}
			for _, key := range domain.AllSlots {
				raw, ok := snapshot[key]
				if !ok {
					fmt.Fprintf(stdout, "%-20s (default)\n", key)
					continue
				}
				value := string(raw)
				if key == domain.SlotCatalog {
					value = fmt.Sprintf("%d bytes", len(raw))
				}
				fmt.Fprintf(stdout, "%-20s %s\n", key, value)
			}
			return nil
		},
	}
}

func newPrefsResetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored preference so defaults apply next time",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runtime, err := opts.open()
			if err != nil {
				return err
			}
			if err := runtime.ResetPreferences(); err != nil {
				return err
			}
			fmt.Fprintln(stdout, "preferences reset")
			return nil
		},
	}
}
