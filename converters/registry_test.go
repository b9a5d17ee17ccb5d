package converters

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darianmavgo/json2csv/converters/common"
)

type nopDriver struct{}

func (nopDriver) Extension() string { return ".nop" }

func (nopDriver) WriteTable(*common.Table, io.Writer, *common.ConversionConfig) error { return nil }

func TestRegisterAndLookup(t *testing.T) {
	Register("registry_test_nop", nopDriver{})

	d, err := Lookup("registry_test_nop")
	require.NoError(t, err)
	assert.Equal(t, ".nop", d.Extension())
	assert.Contains(t, Formats(), "registry_test_nop")

	assert.Panics(t, func() { Register("registry_test_nop", nopDriver{}) })
	assert.Panics(t, func() { Register("registry_test_nil", nil) })
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no_such_format")
	assert.Error(t, err)
}
