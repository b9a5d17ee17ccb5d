package common

// MissingFieldPolicy decides what happens when a record lacks a header field.
type MissingFieldPolicy string

const (
	// MissingFieldError fails the conversion with a MISSING_FIELD error.
	MissingFieldError MissingFieldPolicy = "error"
	// MissingFieldDefault substitutes NullValue, the same as a JSON null.
	MissingFieldDefault MissingFieldPolicy = "default"
)

const (
	DefaultEncoding  = "utf-8"
	DefaultTableName = "tb0"
	DefaultBatchSize = 1000
)

// ConversionConfig stores configuration options for the conversion process.
type ConversionConfig struct {
	NullValue     string             // Replacement text for null (and, by policy, missing) values
	MissingField  MissingFieldPolicy // What to do with a missing header field
	Encoding      string             // Target character encoding label for text output
	InputEncoding string             // Character encoding label of the JSON input
	UseCRLF       bool               // Terminate CSV rows with \r\n instead of \n
	TableName     string             // Sheet / table name for formats that have one
	BatchSize     int                // Rows per transaction for the sqlite format
	Verbose       bool               // Enable detailed logging
}

// DefaultConversionConfig returns the configuration used when callers pass nil.
func DefaultConversionConfig() *ConversionConfig {
	return &ConversionConfig{
		MissingField:  MissingFieldError,
		Encoding:      DefaultEncoding,
		InputEncoding: DefaultEncoding,
		TableName:     DefaultTableName,
		BatchSize:     DefaultBatchSize,
	}
}

// OrDefault returns c with zero fields filled in, or the defaults when c is nil.
// The receiver is never modified.
func (c *ConversionConfig) OrDefault() *ConversionConfig {
	if c == nil {
		return DefaultConversionConfig()
	}
	out := *c
	if out.MissingField == "" {
		out.MissingField = MissingFieldError
	}
	if out.Encoding == "" {
		out.Encoding = DefaultEncoding
	}
	if out.InputEncoding == "" {
		out.InputEncoding = DefaultEncoding
	}
	if out.TableName == "" {
		out.TableName = DefaultTableName
	}
	if out.BatchSize <= 0 {
		out.BatchSize = DefaultBatchSize
	}
	return &out
}
