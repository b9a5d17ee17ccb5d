package converters

import (
	"fmt"

	"github.com/darianmavgo/json2csv/converters/common"
)

// BuildTable derives a table from records. The header is the key order of
// the first record; every record, the first included, becomes one row with
// its values looked up by header key.
//
// A first record without fields gives no header and fails with
// MALFORMED_INPUT. Null values are replaced by config.NullValue. A record that lacks a header
// field fails with MISSING_FIELD unless config.MissingField is
// MissingFieldDefault, in which case NullValue is used. Fields that only
// appear in later records are ignored.
func BuildTable(records []*common.Record, config *common.ConversionConfig) (*common.Table, error) {
	cfg := config.OrDefault()

	if len(records) == 0 {
		return nil, &common.Error{Code: common.EmptySource, Record: -1}
	}

	header := records[0].Keys()
	if len(header) == 0 {
		return nil, &common.Error{Code: common.MalformedInput, Record: 0, Err: fmt.Errorf("first record has no fields")}
	}
	placeholder := common.Text(cfg.NullValue)

	rows := make([][]common.Value, len(records))
	for i, record := range records {
		row := make([]common.Value, len(header))
		for j, key := range header {
			val, ok := record.Get(key)
			switch {
			case !ok && cfg.MissingField != common.MissingFieldDefault:
				return nil, &common.Error{Code: common.MissingField, Record: i, Field: key}
			case !ok, val.IsNull():
				row[j] = placeholder
			default:
				row[j] = val
			}
		}
		rows[i] = row
	}

	return &common.Table{Header: header, Rows: rows}, nil
}
