package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

func TestBindNamed(t *testing.T) {
	t.Run("question placeholders", func(t *testing.T) {
		bound, args, err := BindNamed(sqlx.QUESTION, "SELECT * FROM a WHERE id = :id AND n = :n", map[string]any{"id": 1, "n": "x"})
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM a WHERE id = ? AND n = ?", bound)
		assert.Equal(t, []any{1, "x"}, args)
	})

	t.Run("dollar placeholders", func(t *testing.T) {
		bound, args, err := BindNamed(sqlx.DOLLAR, "SELECT * FROM a WHERE id = :id", map[string]any{"id": 7})
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM a WHERE id = $1", bound)
		assert.Equal(t, []any{7}, args)
	})

	t.Run("nil params with no placeholders", func(t *testing.T) {
		bound, args, err := BindNamed(sqlx.QUESTION, "SELECT 1", nil)
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1", bound)
		assert.Empty(t, args)
	})

	t.Run("missing parameter fails", func(t *testing.T) {
		_, _, err := BindNamed(sqlx.QUESTION, "SELECT * FROM a WHERE id = :id", nil)
		assert.Error(t, err)
	})
}

func TestRunDump(t *testing.T) {
	ctx := context.Background()

	t.Run("stdout redirected to destination", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out.sql")
		err := RunDump(ctx, dbcapabilities.SQLite, "echo", []string{"-- dump"}, dest)
		require.NoError(t, err)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- dump")
	})

	t.Run("hostile arguments stay inert", func(t *testing.T) {
		marker := filepath.Join(t.TempDir(), "pwned")
		dest := filepath.Join(t.TempDir(), "out.sql")
		// If any shell interpreted this argument the marker file would
		// exist afterwards.
		err := RunDump(ctx, dbcapabilities.SQLite, "echo", []string{"; touch " + marker}, dest)
		require.NoError(t, err)
		_, statErr := os.Stat(marker)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("non-zero exit classifies as backup failure", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out.sql")
		err := RunDump(ctx, dbcapabilities.MySQL, "false", nil, dest)
		assert.ErrorIs(t, err, adapter.ErrBackupFailed)
		_, statErr := os.Stat(dest)
		assert.True(t, os.IsNotExist(statErr), "partial file should be removed")
	})

	t.Run("missing tool classifies as backup failure", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out.sql")
		err := RunDump(ctx, dbcapabilities.PostgreSQL, "definitely-not-a-dump-tool", nil, dest)
		assert.ErrorIs(t, err, adapter.ErrBackupFailed)
	})

	t.Run("deadline classifies as timeout", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out.sql")
		shortCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		err := RunDump(shortCtx, dbcapabilities.PostgreSQL, "sleep", []string{"5"}, dest)
		assert.ErrorIs(t, err, adapter.ErrTimeout)
	})

	t.Run("empty destination is invalid input", func(t *testing.T) {
		err := RunDump(ctx, dbcapabilities.PostgreSQL, "echo", nil, "")
		assert.ErrorIs(t, err, adapter.ErrInvalidInput)
	})
}
