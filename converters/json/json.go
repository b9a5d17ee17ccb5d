package json

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/darianmavgo/json2csv/converters"
	"github.com/darianmavgo/json2csv/converters/common"
	"golang.org/x/net/html/charset"
)

// ReadRecords decodes a JSON array of flat objects. Object keys keep their
// source order and numbers keep their literal text. Anything else (invalid
// JSON, a non-array root, a non-object element or a nested field value) is a
// MALFORMED_INPUT error.
func ReadRecords(r io.Reader) ([]*common.Record, error) {
	dec := json.NewDecoder(bufio.NewReaderSize(r, 65536))
	dec.UseNumber()

	// Peek the first token to determine structure
	token, err := dec.Token()
	if err != nil {
		return nil, malformed(-1, "", fmt.Errorf("failed to read JSON start: %w", err))
	}
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return nil, malformed(-1, "", fmt.Errorf("expected JSON array at root"))
	}

	var records []*common.Record
	for idx := 0; dec.More(); idx++ {
		rec, err := readObject(dec, idx)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	// Consume closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, malformed(-1, "", fmt.Errorf("expected closing ']': %w", err))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed(-1, "", fmt.Errorf("unexpected data after JSON array"))
	}

	return records, nil
}

func readObject(dec *json.Decoder, idx int) (*common.Record, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, malformed(idx, "", fmt.Errorf("error reading token: %w", err))
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, malformed(idx, "", fmt.Errorf("expected JSON object"))
	}

	rec := common.NewRecord(8)
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil, malformed(idx, "", fmt.Errorf("error reading key: %w", err))
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, malformed(idx, "", fmt.Errorf("expected string key"))
		}

		valToken, err := dec.Token()
		if err != nil {
			return nil, malformed(idx, key, fmt.Errorf("error decoding value: %w", err))
		}
		val, err := scalar(valToken)
		if err != nil {
			return nil, malformed(idx, key, err)
		}
		rec.Set(key, val)
	}

	// Consume closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, malformed(idx, "", fmt.Errorf("error reading closing brace: %w", err))
	}
	return rec, nil
}

func scalar(t json.Token) (common.Value, error) {
	switch v := t.(type) {
	case nil:
		return common.Null(), nil
	case string:
		return common.Text(v), nil
	case json.Number:
		return common.Number(v.String()), nil
	case bool:
		return common.Bool(v), nil
	case json.Delim:
		return common.Value{}, fmt.Errorf("nested %s values are not supported", delimName(v))
	}
	return common.Value{}, fmt.Errorf("unexpected token %v", t)
}

func delimName(d json.Delim) string {
	if d == '[' {
		return "array"
	}
	return "object"
}

func malformed(record int, field string, err error) error {
	return &common.Error{Code: common.MalformedInput, Record: record, Field: field, Err: err}
}

// LoadTable reads the JSON file at path and builds its table. Input in an
// encoding other than utf-8 is decoded according to config.InputEncoding.
func LoadTable(path string, config *common.ConversionConfig) (*common.Table, error) {
	cfg := config.OrDefault()

	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewError(common.IO, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if cfg.InputEncoding != common.DefaultEncoding {
		r, err = charset.NewReaderLabel(cfg.InputEncoding, f)
		if err != nil {
			return nil, common.NewError(common.Encoding, path, err)
		}
	}

	records, err := ReadRecords(r)
	if err != nil {
		return nil, common.WithPath(err, path)
	}
	if cfg.Verbose {
		log.Printf("[JSON2CSV] Read %d records from %s", len(records), path)
	}

	table, err := converters.BuildTable(records, cfg)
	if err != nil {
		return nil, common.WithPath(err, path)
	}
	if cfg.Verbose {
		log.Printf("[JSON2CSV] Table for %s has columns: %v", path, table.Header)
	}
	return table, nil
}
