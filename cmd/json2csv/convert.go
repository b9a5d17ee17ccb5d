package main

import (
	"io"
	"log"
	"os"

	"github.com/darianmavgo/json2csv/converters/common"
	"github.com/darianmavgo/json2csv/converters/filesystem"
	"github.com/darianmavgo/json2csv/converters/json"

	"github.com/davecgh/go-spew/spew"
)

// ConvertFile converts the JSON file at inputPath into outputPath using driver
// and returns the number of data rows written.
//
// The table is built before the output is opened, so an input that cannot be
// converted never creates an output file. A failed write removes the output.
func ConvertFile(inputPath, outputPath string, driver common.Driver, allowOverwrite bool, config *common.ConversionConfig) (int, error) {
	table, err := json.LoadTable(inputPath, config)
	if err != nil {
		return 0, err
	}

	out, err := filesystem.OpenForOutput(outputPath, allowOverwrite)
	if err != nil {
		return 0, err
	}

	if err := driver.WriteTable(table, out, config); err != nil {
		out.Close()
		removeOutput(outputPath, config)
		return 0, common.WithPath(err, outputPath)
	}
	if err := out.Close(); err != nil {
		removeOutput(outputPath, config)
		return 0, common.NewError(common.IO, outputPath, err)
	}
	return len(table.Rows), nil
}

func removeOutput(path string, config *common.ConversionConfig) {
	if err := os.Remove(path); err != nil && config != nil && config.Verbose {
		log.Printf("[JSON2CSV] Failed to remove partial output %s: %v", path, err)
	}
}

var dumper = spew.ConfigState{
	Indent:                  "    ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// DumpTable prints the table for inputPath to w instead of converting it.
func DumpTable(inputPath string, w io.Writer, config *common.ConversionConfig) error {
	table, err := json.LoadTable(inputPath, config)
	if err != nil {
		return err
	}
	dumper.Fdump(w, table.Strings())
	return nil
}
