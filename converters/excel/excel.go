package excel

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/darianmavgo/json2csv/converters"
	"github.com/darianmavgo/json2csv/converters/common"

	"github.com/xuri/excelize/v2"
)

func init() {
	converters.Register("xlsx", &excelDriver{})
}

type excelDriver struct{}

func (d *excelDriver) Extension() string { return ".xlsx" }

func (d *excelDriver) WriteTable(table *common.Table, w io.Writer, config *common.ConversionConfig) error {
	return WriteTable(table, w, config)
}

const (
	defaultSheet    = "Sheet1"
	maxSheetNameLen = 31
)

// WriteTable writes table as a single-sheet workbook to w. Numbers become
// numeric cells and booleans boolean cells; everything else is a string.
func WriteTable(table *common.Table, w io.Writer, config *common.ConversionConfig) error {
	cfg := config.OrDefault()

	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(cfg.TableName)
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer for sheet %s: %w", sheet, err)
	}

	header := make([]interface{}, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, val := range row {
			values[j] = cellValue(val)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return &common.Error{Code: common.IO, Record: i, Err: err}
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet %s: %w", sheet, err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return common.NewError(common.IO, "", err)
	}

	if cfg.Verbose {
		log.Printf("[JSON2CSV] Wrote %d rows to sheet %s", len(table.Rows), sheet)
	}
	return nil
}

func cellValue(v common.Value) interface{} {
	switch v.Kind() {
	case common.KindNumber:
		if n, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return f
		}
	case common.KindBool:
		return v.String() == "true"
	}
	return v.String()
}

// SheetName makes name usable as a worksheet name: characters Excel rejects
// are removed and the result is cut to 31 characters.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return -1
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	if utf8.RuneCountInString(name) > maxSheetNameLen {
		name = string([]rune(name)[:maxSheetNameLen])
	}
	if strings.TrimSpace(name) == "" {
		return defaultSheet
	}
	return name
}
