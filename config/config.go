package config

import (
	"fmt"
	"os"

	"github.com/darianmavgo/json2csv/converters/common"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Config represents the application configuration.
type Config struct {
	Format        string `hcl:"format,optional"`
	Encoding      string `hcl:"encoding,optional"`
	InputEncoding string `hcl:"input_encoding,optional"`
	NullValue     string `hcl:"null_value,optional"`
	MissingField  string `hcl:"missing_field,optional"`
	Overwrite     bool   `hcl:"overwrite,optional"`
	CRLF          bool   `hcl:"crlf,optional"`
	KeepGoing     bool   `hcl:"keep_going,optional"`
	BatchSize     int    `hcl:"batch_size,optional"`
	Verbose       bool   `hcl:"verbose,optional"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Format:        "csv",
		Encoding:      common.DefaultEncoding,
		InputEncoding: common.DefaultEncoding,
		MissingField:  string(common.MissingFieldError),
		BatchSize:     common.DefaultBatchSize,
	}
}

// Load reads the configuration from the given HCL file.
// Attributes missing from the file keep their default values.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	cfg := DefaultConfig()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that can be checked without the output registry.
func (c *Config) Validate() error {
	switch common.MissingFieldPolicy(c.MissingField) {
	case common.MissingFieldError, common.MissingFieldDefault:
	default:
		return fmt.Errorf("missing_field must be %q or %q, got %q",
			common.MissingFieldError, common.MissingFieldDefault, c.MissingField)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.Format == "" {
		return fmt.Errorf("format must not be empty")
	}
	return nil
}

// ConversionConfig returns the per-conversion options for an output table
// named tableName.
func (c *Config) ConversionConfig(tableName string) *common.ConversionConfig {
	return &common.ConversionConfig{
		NullValue:     c.NullValue,
		MissingField:  common.MissingFieldPolicy(c.MissingField),
		Encoding:      c.Encoding,
		InputEncoding: c.InputEncoding,
		UseCRLF:       c.CRLF,
		TableName:     tableName,
		BatchSize:     c.BatchSize,
		Verbose:       c.Verbose,
	}
}

// Export writes the configuration to the specified file in HCL format.
func Export(path string, cfg *Config) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("format", cty.StringVal(cfg.Format))
	root.SetAttributeValue("encoding", cty.StringVal(cfg.Encoding))
	root.SetAttributeValue("input_encoding", cty.StringVal(cfg.InputEncoding))
	root.SetAttributeValue("null_value", cty.StringVal(cfg.NullValue))
	root.SetAttributeValue("missing_field", cty.StringVal(cfg.MissingField))
	root.SetAttributeValue("overwrite", cty.BoolVal(cfg.Overwrite))
	root.SetAttributeValue("crlf", cty.BoolVal(cfg.CRLF))
	root.SetAttributeValue("keep_going", cty.BoolVal(cfg.KeepGoing))
	root.SetAttributeValue("batch_size", cty.NumberIntVal(int64(cfg.BatchSize)))
	root.SetAttributeValue("verbose", cty.BoolVal(cfg.Verbose))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(f.Bytes())
	if err != nil {
		return fmt.Errorf("failed to write config to file: %w", err)
	}
	return nil
}
