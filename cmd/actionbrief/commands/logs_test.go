// ABOUTME: Tests for the logs command
// ABOUTME: Reads a prepared database through the CLI in every format
package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/actionbrief/internal/models"
	"github.com/harper/actionbrief/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func prepareLogDB(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "app_logs.db")

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	store := sqlite.NewLogStore(db, nil)
	for i := 1; i <= n; i++ {
		_, err := store.Append(context.Background(), models.LevelError, fmt.Sprintf("failure number %d", i))
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	t.Setenv("DATA_DIR", dir)
	t.Setenv("DATABASE_PATH", path)
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestLogsCmd_JSON(t *testing.T) {
	prepareLogDB(t, 5)

	out, err := runRoot(t, "logs", "--format", "json", "--limit", "2")
	require.NoError(t, err)

	var entries []models.LogEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, int64(5), entries[0].ID)
	assert.Equal(t, int64(4), entries[1].ID)
	assert.Equal(t, models.LevelError, entries[0].Level)
}

func TestLogsCmd_YAML(t *testing.T) {
	prepareLogDB(t, 3)

	out, err := runRoot(t, "logs", "--format", "yaml", "--limit", "2")
	require.NoError(t, err)

	var export sqlite.LogExport
	require.NoError(t, yaml.Unmarshal([]byte(out), &export))
	assert.Equal(t, "actionbrief", export.Tool)
	require.Len(t, export.Entries, 2)
	assert.Equal(t, int64(3), export.Entries[0].ID)
	assert.Equal(t, "failure number 3", export.Entries[0].Message)
}

func TestLogsCmd_Markdown(t *testing.T) {
	prepareLogDB(t, 1)

	out, err := runRoot(t, "logs", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| ID | Timestamp | Level | Message |")
	assert.Contains(t, out, "failure number 1")
}

func TestLogsCmd_Table(t *testing.T) {
	prepareLogDB(t, 3)

	out, err := runRoot(t, "logs")
	require.NoError(t, err)
	assert.Contains(t, out, "MESSAGE")
	assert.Contains(t, out, "failure number 3")
	assert.Less(t, strings.Index(out, "failure number 3"), strings.Index(out, "failure number 1"))
}

func TestLogsCmd_Empty(t *testing.T) {
	prepareLogDB(t, 0)

	out, err := runRoot(t, "logs")
	require.NoError(t, err)
	assert.Contains(t, out, "No log entries found")
}

func TestLogsCmd_BadFlags(t *testing.T) {
	prepareLogDB(t, 0)

	_, err := runRoot(t, "logs", "--limit", "0")
	assert.Error(t, err)

	_, err = runRoot(t, "logs", "--format", "xml")
	assert.Error(t, err)
}
