package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/darianmavgo/json2csv/config"
	"github.com/darianmavgo/json2csv/converters"
	_ "github.com/darianmavgo/json2csv/converters/all"
	"github.com/darianmavgo/json2csv/converters/filesystem"

	"github.com/spf13/cobra"
)

var errConversionFailed = errors.New("one or more inputs failed to convert")

type options struct {
	configPath   string
	exportConfig string
	debug        bool

	format        string
	encoding      string
	inputEncoding string
	nullValue     string
	missingField  string
	overwrite     bool
	crlf          bool
	keepGoing     bool
	verbose       bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "json2csv [flags] inputfile...",
		Short: "Create CSV files from JSON files",
		Long: `Create a CSV file from a JSON file. The input files must contain an array of
objects with uniform keys; the first object's keys become the header row.
Output is written to the current working directory: for the input file
'/something/thing.json' we create './thing.csv'. By default existing files
are not overwritten.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	defaults := config.DefaultConfig()
	flags := cmd.Flags()
	flags.BoolVarP(&opts.overwrite, "overwrite", "w", false, "Overwrite the output file(s) if they exist")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Print the table instead of generating output files")
	flags.StringVarP(&opts.format, "format", "f", defaults.Format,
		"Output format: "+strings.Join(converters.Formats(), ", "))
	flags.StringVarP(&opts.encoding, "encoding", "e", defaults.Encoding, "Character encoding of the output")
	flags.StringVar(&opts.inputEncoding, "input-encoding", defaults.InputEncoding, "Character encoding of the input files")
	flags.StringVar(&opts.nullValue, "null-value", defaults.NullValue, "Text written for null values")
	flags.StringVar(&opts.missingField, "missing-field", defaults.MissingField,
		"What to do when a record lacks a header field: error or default")
	flags.BoolVar(&opts.crlf, "crlf", false, "Terminate CSV rows with \\r\\n")
	flags.BoolVarP(&opts.keepGoing, "keep-going", "k", false, "Continue with the remaining inputs after a failure")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable detailed logging")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Load settings from an HCL file")
	flags.StringVar(&opts.exportConfig, "export-config", "", "Write the effective settings to an HCL file")

	return cmd
}

// resolveConfig merges the config file, if any, with explicitly set flags.
// Precedence: CLI flag > config file > defaults
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("encoding") {
		cfg.Encoding = opts.encoding
	}
	if flags.Changed("input-encoding") {
		cfg.InputEncoding = opts.inputEncoding
	}
	if flags.Changed("null-value") {
		cfg.NullValue = opts.nullValue
	}
	if flags.Changed("missing-field") {
		cfg.MissingField = opts.missingField
	}
	if flags.Changed("overwrite") {
		cfg.Overwrite = opts.overwrite
	}
	if flags.Changed("crlf") {
		cfg.CRLF = opts.crlf
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing = opts.keepGoing
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options, args []string, stdout, stderr io.Writer) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	if opts.exportConfig != "" {
		if err := config.Export(opts.exportConfig, cfg); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote settings to %s\n", opts.exportConfig)
	}
	if len(args) == 0 {
		if opts.exportConfig != "" {
			return nil
		}
		return errors.New("requires at least one input file")
	}

	driver, err := converters.Lookup(cfg.Format)
	if err != nil {
		return err
	}

	failed := 0
	for _, inputPath := range args {
		tableName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		cc := cfg.ConversionConfig(tableName)

		if opts.debug {
			err = DumpTable(inputPath, stdout, cc)
		} else {
			outputPath := filesystem.OutputFilename(inputPath, driver.Extension())
			var n int
			n, err = ConvertFile(inputPath, outputPath, driver, cfg.Overwrite, cc)
			if err == nil {
				fmt.Fprintf(stdout, "Wrote %d records to %s\n", n, outputPath)
			}
		}

		if err != nil {
			fmt.Fprintf(stderr, "json2csv: %s: %v\n", inputPath, err)
			failed++
			if !cfg.KeepGoing {
				break
			}
		}
	}

	if failed > 0 {
		return errConversionFailed
	}
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errConversionFailed) {
			fmt.Fprintf(os.Stderr, "json2csv: %v\n", err)
		}
		os.Exit(1)
	}
}
