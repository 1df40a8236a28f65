// ABOUTME: CLI command to list recent audit log rows
// ABOUTME: Same rows the admin page shows, as a table, JSON, YAML or Markdown
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/harper/actionbrief/internal/logging"
	"github.com/harper/actionbrief/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

var (
	logsLimit  int
	logsFormat string
)

var logFormats = []string{"table", "json", "yaml", "markdown"}

// NewLogsCmd creates the logs command
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent audit log entries",
		Long: `Show recent audit log entries, newest first.

Examples:
  actionbrief logs
  actionbrief logs --limit 10
  actionbrief logs --format json
  actionbrief logs --format yaml > audit.yaml`,
		RunE: runLogs,
	}

	cmd.Flags().IntVar(&logsLimit, "limit", sqlite.DefaultRecentLimit, "Number of entries to show")
	cmd.Flags().StringVar(&logsFormat, "format", "table", "Output format (table, json, yaml, markdown)")

	return cmd
}

func runLogs(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(logsLimit, "limit"); err != nil {
		return err
	}
	if !containsString(logFormats, logsFormat) {
		return fmt.Errorf("unknown format %q, want one of %v", logsFormat, logFormats)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening log database: %w", err)
	}
	defer func() { _ = db.Close() }()

	store := sqlite.NewLogStore(db, logging.Default)
	out := cmd.OutOrStdout()

	switch logsFormat {
	case "yaml", "markdown":
		export, err := store.Export(context.Background(), logsLimit)
		if err != nil {
			return fmt.Errorf("exporting logs: %w", err)
		}
		if logsFormat == "yaml" {
			return export.WriteYAML(out)
		}
		return export.WriteMarkdown(out)
	}

	entries, err := store.Recent(context.Background(), logsLimit)
	if err != nil {
		return fmt.Errorf("reading logs: %w", err)
	}

	if logsFormat == "json" {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", data)
		return nil
	}

	if len(entries) == 0 {
		if !quiet {
			fmt.Fprintln(out, "No log entries found")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tWHEN\tLEVEL\tMESSAGE\n")
	fmt.Fprintf(w, "--\t----\t-----\t-------\n")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, formatTime(e.Timestamp), e.Level, truncate(e.Message, 80))
	}
	return w.Flush()
}
