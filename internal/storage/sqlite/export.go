// ABOUTME: Export functionality for the audit log
// ABOUTME: Supports YAML and Markdown export formats
package sqlite

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportVersion is the version stamped on every export
const ExportVersion = "1.0"

// LogExport is the exportable form of the audit log
type LogExport struct {
	Version    string        `yaml:"version" json:"version"`
	ExportedAt string        `yaml:"exported_at" json:"exported_at"`
	Tool       string        `yaml:"tool" json:"tool"`
	Entries    []ExportEntry `yaml:"entries" json:"entries"`
}

// ExportEntry is one audit row for export
type ExportEntry struct {
	ID        int64  `yaml:"id" json:"id"`
	Timestamp string `yaml:"timestamp" json:"timestamp"`
	Level     string `yaml:"level" json:"level"`
	Message   string `yaml:"message" json:"message"`
}

// Export returns up to limit rows, newest first, wrapped for export
func (s *LogStore) Export(ctx context.Context, limit int) (*LogExport, error) {
	entries, err := s.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read logs: %w", err)
	}

	data := &LogExport{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Tool:       "actionbrief",
		Entries:    make([]ExportEntry, 0, len(entries)),
	}
	for _, e := range entries {
		data.Entries = append(data.Entries, ExportEntry{
			ID:        e.ID,
			Timestamp: e.Timestamp.Format(time.RFC3339),
			Level:     string(e.Level),
			Message:   e.Message,
		})
	}
	return data, nil
}

// WriteYAML encodes the export as YAML
func (e *LogExport) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(e); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteMarkdown renders the export as a Markdown table
func (e *LogExport) WriteMarkdown(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# actionbrief Audit Log\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", e.ExportedAt)

	if len(e.Entries) == 0 {
		b.WriteString("No log entries.\n")
	} else {
		b.WriteString("| ID | Timestamp | Level | Message |\n")
		b.WriteString("|----|-----------|-------|---------|\n")
		for _, entry := range e.Entries {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", entry.ID, entry.Timestamp, entry.Level, escapeCell(entry.Message))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// escapeCell keeps a message inside one Markdown table cell
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
