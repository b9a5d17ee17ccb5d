package common

import "io"

// Driver defines the interface that must be implemented by an output format package.
type Driver interface {
	// Extension returns the file extension, including the dot, used for
	// output files of this format.
	Extension() string

	// WriteTable writes table to w. It must not close w.
	WriteTable(table *Table, w io.Writer, config *ConversionConfig) error
}
