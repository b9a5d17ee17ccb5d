package json

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darianmavgo/json2csv/converters/common"
)

func TestReadRecordsKeepsKeyOrder(t *testing.T) {
	jsonContent := `[
        {"zeta": "z", "alpha": 1, "mid": null},
        {"mid": true, "zeta": "y", "alpha": 2.5}
    ]`

	records, err := ReadRecords(strings.NewReader(jsonContent))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, records[0].Keys())
	assert.Equal(t, []string{"mid", "zeta", "alpha"}, records[1].Keys())

	v, _ := records[0].Get("alpha")
	assert.Equal(t, common.KindNumber, v.Kind())
	assert.Equal(t, "1", v.String())

	v, _ = records[0].Get("mid")
	assert.True(t, v.IsNull())

	v, _ = records[1].Get("mid")
	assert.Equal(t, common.KindBool, v.Kind())
	assert.Equal(t, "true", v.String())
}

func TestReadRecordsNumberLiterals(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(`[{"a": 12345678901234567890, "b": 1e3, "c": -0.50}]`))
	require.NoError(t, err)

	for key, want := range map[string]string{"a": "12345678901234567890", "b": "1e3", "c": "-0.50"} {
		v, ok := records[0].Get(key)
		require.True(t, ok)
		assert.Equal(t, want, v.String(), key)
	}
}

func TestReadRecordsUnicode(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(`[{"city": "Zürich", "greeting": "こんにちは", "escaped": "caf\u00e9"}]`))
	require.NoError(t, err)

	v, _ := records[0].Get("city")
	assert.Equal(t, "Zürich", v.String())
	v, _ = records[0].Get("greeting")
	assert.Equal(t, "こんにちは", v.String())
	v, _ = records[0].Get("escaped")
	assert.Equal(t, "café", v.String())
}

func TestReadRecordsEmptyArray(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadRecordsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		record int
		field  string
	}{
		{"Empty", ``, -1, ""},
		{"NotJSON", `hello`, -1, ""},
		{"ObjectRoot", `{"a": 1}`, -1, ""},
		{"ScalarRoot", `42`, -1, ""},
		{"PrimitiveElement", `[{"a": 1}, 2]`, 1, ""},
		{"NestedObject", `[{"a": {"b": 1}}]`, 0, "a"},
		{"NestedArray", `[{"a": 1}, {"a": [1, 2]}]`, 1, "a"},
		{"Unterminated", `[{"a": 1}`, -1, ""},
		{"TrailingData", `[{"a": 1}] [2]`, -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrMalformedInput), "got %v", err)

			var ce *common.Error
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.record, ce.Record)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.json")
	err := os.WriteFile(path, []byte(`[{"name":"Alice","age":30},{"name":"Bob","age":null}]`), 0644)
	require.NoError(t, err)

	table, err := LoadTable(path, nil)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"name", "age"},
		{"Alice", "30"},
		{"Bob", ""},
	}, table.Strings())
}

func TestLoadTableErrorsCarryPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		path := filepath.Join(dir, "missing.json")
		_, err := LoadTable(path, nil)
		require.ErrorIs(t, err, common.ErrIO)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("Empty", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
		_, err := LoadTable(path, nil)
		require.ErrorIs(t, err, common.ErrEmptySource)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0644))
		_, err := LoadTable(path, nil)
		require.ErrorIs(t, err, common.ErrMalformedInput)
		assert.Contains(t, err.Error(), path)
	})
	t.Run("EmptyFirstRecord", func(t *testing.T) {
		path := filepath.Join(dir, "nofields.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{}, {"a": 1}]`), 0644))
		_, err := LoadTable(path, nil)
		require.ErrorIs(t, err, common.ErrMalformedInput)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("UnknownInputEncoding", func(t *testing.T) {
		path := filepath.Join(dir, "people.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"a": 1}]`), 0644))
		_, err := LoadTable(path, &common.ConversionConfig{InputEncoding: "no-such-charset"})
		require.ErrorIs(t, err, common.ErrEncoding)
		assert.Contains(t, err.Error(), path)
	})
}

func TestLoadTableInputEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.json")
	// "café" and "naïve" as windows-1252 bytes
	content := []byte("[{\"word\":\"caf\xe9\"},{\"word\":\"na\xefve\"}]")
	require.NoError(t, os.WriteFile(path, content, 0644))

	table, err := LoadTable(path, &common.ConversionConfig{InputEncoding: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"word"},
		{"café"},
		{"naïve"},
	}, table.Strings())

	// latin1 is an alias for windows-1252 in the WHATWG index
	table, err = LoadTable(path, &common.ConversionConfig{InputEncoding: "latin1"})
	require.NoError(t, err)
	assert.Equal(t, "café", table.Rows[0][0].String())
}
