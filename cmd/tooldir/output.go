package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"tooldir/internal/app"
	"tooldir/internal/domain"
)

var stdout io.Writer = os.Stdout

func writeJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

type resultRow struct {
	domain.Tool
	Favorite bool `json:"favorite"`
}

// printResults renders the current results and returns how many there were.
func printResults(session *app.Session, jsonOutput bool) (int, error) {
	results := session.Results()
	if jsonOutput {
		rows := make([]resultRow, len(results))
		for i, tool := range results {
			rows[i] = resultRow{Tool: tool, Favorite: session.IsFavorite(tool.ID)}
		}
		return len(rows), writeJSON(map[string]any{
			"query":   session.Query(),
			"total":   len(rows),
			"results": rows,
		})
	}

	printQuerySummary(session.Query())
	if len(results) == 0 {
		fmt.Fprintln(stdout, "no tools match")
		return 0, nil
	}
	for _, tool := range results {
		marker := " "
		if session.IsFavorite(tool.ID) {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %-20s %-18s %4d  %s\n", marker, tool.Name, tool.Category, tool.Trending, tool.URL)
		if len(tool.Tags) > 0 {
			fmt.Fprintf(stdout, "  %-20s tags=%s\n", tool.ID, strings.Join(tool.Tags, ","))
		}
	}
	fmt.Fprintf(stdout, "%d tools\n", len(results))
	return len(results), nil
}

func printQuerySummary(q domain.QueryState) {
	parts := []string{"sort=" + string(q.Sort)}
	if q.Text != "" {
		parts = append(parts, fmt.Sprintf("text=%q", q.Text))
	}
	if q.Categories.Len() > 0 {
		parts = append(parts, "categories="+strings.Join(q.Categories, ","))
	}
	if q.Tags.Len() > 0 {
		parts = append(parts, "tags="+strings.Join(q.Tags, ","))
	}
	if q.OnlyFavorites {
		parts = append(parts, "favorites-only")
	}
	fmt.Fprintf(stdout, "# %s\n", strings.Join(parts, " "))
}

func printImportReport(report domain.ImportReport, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(report)
	}
	fmt.Fprintf(stdout, "added=%d updated=%d skipped=%d\n", report.Added, report.Updated, report.Skipped)
	for _, issue := range report.Issues {
		label := fmt.Sprintf("record %d", issue.Index)
		if issue.ID != "" {
			label += fmt.Sprintf(" (%s)", issue.ID)
		}
		fmt.Fprintf(stdout, "  skipped %s: %s\n", label, issue.Message)
	}
	return nil
}
