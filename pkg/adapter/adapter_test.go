package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databridge-io/databridge/pkg/dbcapabilities"
)

func TestIsReadStatement(t *testing.T) {
	tests := []struct {
		statement string
		read      bool
	}{
		{"SELECT * FROM a", true},
		{"select 1", true},
		{"  select 1", true},
		{"\n\tSeLeCt id FROM a\n", true},
		{"select* from a", true},
		{"select(1)", true},
		{"INSERT INTO a VALUES (1)", false},
		{"UPDATE a SET id = 2", false},
		{"DELETE FROM a", false},
		{"CREATE TABLE a(id INT)", false},
		{"WITH t AS (SELECT 1) SELECT * FROM t", false},
		{"selection", false},
		{"sel", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.statement, func(t *testing.T) {
			assert.Equal(t, tt.read, IsReadStatement(tt.statement))
		})
	}
}

func TestQueryResult(t *testing.T) {
	t.Run("read result shape", func(t *testing.T) {
		res := NewReadResult([]string{"id"}, []map[string]any{{"id": int64(1)}})
		assert.True(t, res.IsRead())
		assert.Equal(t, 1, res.RowCount)

		data, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"columns":["id"],"rows":[{"id":1}],"row_count":1}`, string(data))
	})

	t.Run("empty read result keeps columns", func(t *testing.T) {
		res := NewReadResult(nil, nil)
		assert.True(t, res.IsRead())

		data, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"columns":[],"rows":[],"row_count":0}`, string(data))
	})

	t.Run("write result shape", func(t *testing.T) {
		res := NewWriteResult(3)
		assert.False(t, res.IsRead())

		data, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"affected_rows":3}`, string(data))
	})
}

func TestErrorClassification(t *testing.T) {
	t.Run("database error matches ErrQueryFailed", func(t *testing.T) {
		err := WrapQuery(dbcapabilities.PostgreSQL, "execute", errors.New("syntax error"))
		assert.ErrorIs(t, err, ErrQueryFailed)
		assert.NotErrorIs(t, err, ErrTimeout)
	})

	t.Run("deadline classifies as timeout", func(t *testing.T) {
		err := WrapQuery(dbcapabilities.MySQL, "execute", context.DeadlineExceeded)
		assert.ErrorIs(t, err, ErrTimeout)
		assert.NotErrorIs(t, err, ErrQueryFailed)
		assert.True(t, IsTimeout(err))
	})

	t.Run("wrap does not double-wrap", func(t *testing.T) {
		inner := WrapQuery(dbcapabilities.SQLite, "execute", errors.New("locked"))
		outer := WrapQuery(dbcapabilities.SQLite, "execute", inner)
		assert.Equal(t, inner, outer)
	})

	t.Run("unsupported passes through wrap", func(t *testing.T) {
		inner := NewUnsupportedOperationError(dbcapabilities.Redis, "query execution", "")
		err := WrapQuery(dbcapabilities.Redis, "execute", inner)
		assert.ErrorIs(t, err, ErrUnsupportedOperation)
		assert.NotErrorIs(t, err, ErrQueryFailed)
	})

	t.Run("connection error", func(t *testing.T) {
		err := NewConnectionError(dbcapabilities.PostgreSQL, errors.New("refused"))
		assert.ErrorIs(t, err, ErrConnectFailed)
		assert.Contains(t, err.Error(), "postgres")
	})

	t.Run("backup error carries stderr", func(t *testing.T) {
		err := NewBackupError(dbcapabilities.MySQL, "mysqldump", "Access denied", errors.New("exit status 2"))
		assert.ErrorIs(t, err, ErrBackupFailed)
		assert.Contains(t, err.Error(), "Access denied")
	})

	t.Run("invalid input error", func(t *testing.T) {
		err := NewInvalidInputError("name", "must not be empty")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUnsupportedOperators(t *testing.T) {
	ctx := context.Background()

	q := NewUnsupportedQueryOperator(dbcapabilities.Redis)
	_, err := q.Execute(ctx, "SELECT 1", nil)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	s := NewUnsupportedSchemaOperator(dbcapabilities.MongoDB)
	_, err = s.DiscoverSchema(ctx)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
	_, err = s.ListTables(ctx)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	b := NewUnsupportedBackupOperator(dbcapabilities.Redis)
	err = b.Backup(ctx, "/tmp/out.sql")
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	assert.True(t, IsUnsupportedOperator(q))
	assert.True(t, IsUnsupportedOperator(s))
	assert.True(t, IsUnsupportedOperator(b))
	assert.False(t, IsUnsupportedOperator(struct{}{}))
}

type fakeAdapter struct {
	id dbcapabilities.DatabaseID
}

func (f *fakeAdapter) Type() dbcapabilities.DatabaseID           { return f.id }
func (f *fakeAdapter) Capabilities() dbcapabilities.Capability   { return dbcapabilities.MustGet(f.id) }
func (f *fakeAdapter) Connect(ctx context.Context, config ConnectionConfig) (Connection, error) {
	return nil, NewConnectionError(f.id, errors.New("fake"))
}

func TestAdapterRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeAdapter{id: dbcapabilities.PostgreSQL})

	t.Run("get by id", func(t *testing.T) {
		a, err := reg.Get(dbcapabilities.PostgreSQL)
		require.NoError(t, err)
		assert.Equal(t, dbcapabilities.PostgreSQL, a.Type())
	})

	t.Run("get by alias", func(t *testing.T) {
		a, err := reg.GetByName("postgresql")
		require.NoError(t, err)
		assert.Equal(t, dbcapabilities.PostgreSQL, a.Type())
	})

	t.Run("unknown type is invalid input", func(t *testing.T) {
		_, err := reg.GetByName("cassandra")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("registered but missing adapter", func(t *testing.T) {
		_, err := reg.Get(dbcapabilities.Redis)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.False(t, reg.IsRegistered(dbcapabilities.Redis))
	})
}

func TestConnectionConfigRedacted(t *testing.T) {
	cfg := ConnectionConfig{
		Name:       "prod",
		DatabaseID: dbcapabilities.PostgreSQL,
		DSN:        "postgres://svc:topsecret@db:5432/app",
	}
	assert.NotContains(t, cfg.Redacted(), "topsecret")
}
