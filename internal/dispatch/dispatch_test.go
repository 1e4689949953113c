package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databridge-io/databridge/internal/export"
	"github.com/databridge-io/databridge/internal/registry"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"

	_ "github.com/databridge-io/databridge/internal/database/sqlite"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()

	reg := registry.New(adapter.GlobalRegistry())
	t.Cleanup(reg.Close)

	ctx := context.Background()
	require.NoError(t, reg.Add(ctx, adapter.ConnectionConfig{
		Name:       "memdb",
		DatabaseID: dbcapabilities.SQLite,
		DSN:        ":memory:",
	}))

	d := New(reg, Config{
		BackupDir: filepath.Join(t.TempDir(), "backups"),
		ExportDir: filepath.Join(t.TempDir(), "exports"),
	})

	_, err := d.RunQuery(ctx, "memdb", "CREATE TABLE books (id INTEGER PRIMARY KEY, title TEXT)", nil)
	require.NoError(t, err)
	for _, title := range []string{"Dune", "Neuromancer"} {
		res, err := d.RunQuery(ctx, "memdb", "INSERT INTO books (title) VALUES (:title)",
			map[string]any{"title": title})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.AffectedRows)
	}
	return d
}

func TestRunQueryReadAndWrite(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	res, err := d.RunQuery(ctx, "memdb", "SELECT id, title FROM books ORDER BY id", nil)
	require.NoError(t, err)
	assert.True(t, res.IsRead())
	assert.Equal(t, []string{"id", "title"}, res.Columns)
	assert.Equal(t, 2, res.RowCount)

	upd, err := d.RunQuery(ctx, "memdb", "UPDATE books SET title = :t WHERE id = :id",
		map[string]any{"t": "Dune (1965)", "id": int64(1)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.AffectedRows)
}

func TestRunQueryValidation(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	_, err := d.RunQuery(ctx, "memdb", "   ", nil)
	assert.ErrorIs(t, err, adapter.ErrInvalidInput)

	_, err = d.RunQuery(ctx, "ghost", "SELECT 1", nil)
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestGetSchema(t *testing.T) {
	d := newTestDispatcher(t)

	schema, err := d.GetSchema(context.Background(), "memdb")
	require.NoError(t, err)
	table, ok := schema["books"]
	require.True(t, ok)

	var cols []string
	for _, c := range table.Columns {
		cols = append(cols, c.Name)
	}
	assert.ElementsMatch(t, []string{"id", "title"}, cols)
}

func TestGetStatsUnsupportedForSQLite(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.GetStats(context.Background(), "memdb")
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperation)
}

func TestBackupInMemoryUnsupported(t *testing.T) {
	d := newTestDispatcher(t)

	_, err := d.Backup(context.Background(), "memdb", "")
	assert.ErrorIs(t, err, adapter.ErrUnsupportedOperation)

	_, err = d.Backup(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestGeneratedName(t *testing.T) {
	name := generatedName("memdb", "sql")
	assert.True(t, strings.HasPrefix(name, "memdb-"))
	assert.True(t, strings.HasSuffix(name, ".sql"))

	// Collision resistance across rapid calls.
	assert.NotEqual(t, name, generatedName("memdb", "sql"))
}

func TestExportJSONAndCSV(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	res, err := d.Export(ctx, "memdb", "SELECT id, title FROM books ORDER BY id", nil, "json")
	require.NoError(t, err)
	assert.Equal(t, export.FormatJSON, res.Format)
	assert.Equal(t, "application/json", res.ContentType)
	assert.Contains(t, string(res.Payload), `"columns"`)

	res, err = d.Export(ctx, "memdb", "SELECT id, title FROM books ORDER BY id", nil, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", res.ContentType)
	lines := strings.Split(strings.TrimSpace(string(res.Payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,title", lines[0])
}

func TestExportXLSXWritesFile(t *testing.T) {
	d := newTestDispatcher(t)

	res, err := d.Export(context.Background(), "memdb", "SELECT id, title FROM books", nil, "excel")
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, res.Format)
	require.NotEmpty(t, res.Path)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportRejections(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	_, err := d.Export(ctx, "memdb", "SELECT 1", nil, "parquet")
	assert.ErrorIs(t, err, adapter.ErrInvalidInput)

	// Write statements have no tabular shape for csv.
	_, err = d.Export(ctx, "memdb", "DELETE FROM books", nil, "csv")
	assert.ErrorIs(t, err, adapter.ErrInvalidInput)
}
