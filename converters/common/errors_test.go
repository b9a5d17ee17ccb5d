package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := &Error{Code: MissingField, Path: "people.json", Record: 2, Field: "age"}
	assert.Equal(t, `MISSING_FIELD: people.json: record 2: field "age"`, err.Error())

	err = NewError(IO, "out.csv", errors.New("permission denied"))
	assert.Equal(t, "IO: out.csv: permission denied", err.Error())
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("converting: %w", NewError(FileExists, "out.csv", nil))

	assert.True(t, errors.Is(err, ErrFileExists))
	assert.False(t, errors.Is(err, ErrIO))
	assert.Equal(t, FileExists, CodeOf(err))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewError(IO, "out.csv", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrorCode(""), CodeOf(cause))
}

func TestConversionConfigOrDefault(t *testing.T) {
	var nilCfg *ConversionConfig
	assert.Equal(t, DefaultConversionConfig(), nilCfg.OrDefault())

	cfg := &ConversionConfig{NullValue: "NA", UseCRLF: true}
	got := cfg.OrDefault()
	assert.Equal(t, "NA", got.NullValue)
	assert.True(t, got.UseCRLF)
	assert.Equal(t, MissingFieldError, got.MissingField)
	assert.Equal(t, DefaultEncoding, got.Encoding)
	assert.Equal(t, DefaultEncoding, got.InputEncoding)
	assert.Equal(t, DefaultTableName, got.TableName)
	assert.Equal(t, DefaultBatchSize, got.BatchSize)
	assert.Equal(t, "", cfg.Encoding, "receiver must not be modified")
}
