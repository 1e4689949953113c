package export

import (
	"bytes"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/databridge-io/databridge/pkg/adapter"
)

func sampleResult() *adapter.QueryResult {
	return adapter.NewReadResult(
		[]string{"id", "title"},
		[]map[string]any{
			{"id": int64(1), "title": "Dune"},
			{"id": int64(2), "title": "Neuromancer, Special \"Edition\""},
			{"id": int64(3), "title": nil},
		},
	)
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":            FormatJSON,
		"json":        FormatJSON,
		"JSON":        FormatJSON,
		"csv":         FormatCSV,
		"xlsx":        FormatXLSX,
		"excel":       FormatXLSX,
		"Spreadsheet": FormatXLSX,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, "format %q", in)
		assert.Equal(t, want, got, "format %q", in)
	}

	_, err := ParseFormat("parquet")
	assert.ErrorIs(t, err, adapter.ErrInvalidInput)
}

func TestJSONEnvelope(t *testing.T) {
	data, err := JSON(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{"id", "title"}, decoded["columns"])
	assert.Equal(t, float64(3), decoded["row_count"])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	want := "id,title\n" +
		"1,Dune\n" +
		"2,\"Neuromancer, Special \"\"Edition\"\"\"\n" +
		"3,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVRejectsWriteResult(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, adapter.NewWriteResult(2))
	assert.ErrorIs(t, err, adapter.ErrInvalidInput)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "books.xlsx")
	require.NoError(t, WriteXLSX(path, sampleResult()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"id", "title"}, rows[0])
	assert.Equal(t, []string{"1", "Dune"}, rows[1])
}

func TestWriteXLSXRejectsWriteResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.xlsx")
	err := WriteXLSX(path, adapter.NewWriteResult(0))
	assert.ErrorIs(t, err, adapter.ErrInvalidInput)
}
