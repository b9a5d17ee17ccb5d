package csv

import (
	"fmt"
	"io"
	"log"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/darianmavgo/json2csv/converters"
	"github.com/darianmavgo/json2csv/converters/common"
)

func init() {
	converters.Register("csv", &csvDriver{})
}

type csvDriver struct{}

func (d *csvDriver) Extension() string { return ".csv" }

func (d *csvDriver) WriteTable(table *common.Table, w io.Writer, config *common.ConversionConfig) error {
	return WriteTable(table, w, config)
}

const (
	comma = ','
	quote = '"'
)

// Writer writes CSV rows with minimal quoting, encoding every field into the
// target character encoding before it reaches the underlying writer. Each row
// is handed to the underlying writer with a single Write call.
type Writer struct {
	dst io.Writer
	enc *encoding.Encoder // nil for UTF-8

	// UseCRLF writes rows terminated with \r\n when set.
	UseCRLF bool

	sep  []byte
	lf   []byte
	crlf []byte

	header []string
	rows   int
	buf    []byte
	field  []byte
}

// NewWriter returns a Writer that encodes into the encoding named by label.
// Labels are resolved like HTML meta charsets ("utf-8", "latin1",
// "windows-1252", "shift_jis", ...).
func NewWriter(w io.Writer, label string) (*Writer, error) {
	if label == "" {
		label = common.DefaultEncoding
	}
	// The encoder must stay unwrapped so unsupported runes fail instead of
	// becoming HTML entities.
	e, err := htmlindex.Get(label)
	if err != nil {
		return nil, &common.Error{Code: common.Encoding, Record: -1, Err: fmt.Errorf("unknown encoding %q: %w", label, err)}
	}
	name, err := htmlindex.Name(e)
	if err != nil {
		return nil, &common.Error{Code: common.Encoding, Record: -1, Err: err}
	}

	cw := &Writer{dst: w, sep: []byte{comma}, lf: []byte{'\n'}, crlf: []byte{'\r', '\n'}}
	if name == "utf-8" {
		return cw, nil
	}

	cw.enc = e.NewEncoder()
	// Delimiters are single bytes in ASCII-compatible encodings but not in
	// UTF-16, so they go through the encoder too.
	for _, b := range []*[]byte{&cw.sep, &cw.lf, &cw.crlf} {
		encoded, err := cw.enc.Bytes(*b)
		if err != nil {
			return nil, &common.Error{Code: common.Encoding, Record: -1, Err: err}
		}
		*b = encoded
	}
	return cw, nil
}

// Write emits a single row. The first row written is treated as the header
// when reporting encoding errors.
func (w *Writer) Write(fields []string) error {
	if w.rows == 0 {
		w.header = fields
	}
	w.buf = w.buf[:0]

	for i, field := range fields {
		if i > 0 {
			w.buf = append(w.buf, w.sep...)
		}
		w.field = appendField(w.field[:0], field, len(fields) == 1)
		if err := w.appendEncoded(w.field); err != nil {
			return w.encodingError(i, err)
		}
	}
	if w.UseCRLF {
		w.buf = append(w.buf, w.crlf...)
	} else {
		w.buf = append(w.buf, w.lf...)
	}

	if _, err := w.dst.Write(w.buf); err != nil {
		return &common.Error{Code: common.IO, Record: w.rows - 1, Err: err}
	}
	w.rows++
	return nil
}

// Rows reports how many rows, the header included, have been written.
func (w *Writer) Rows() int {
	return w.rows
}

// appendEncoded appends text to the row buffer in the target encoding.
func (w *Writer) appendEncoded(text []byte) error {
	if w.enc == nil {
		w.buf = append(w.buf, text...)
		return nil
	}
	encoded, err := w.enc.Bytes(text)
	if err != nil {
		return err
	}
	w.buf = append(w.buf, encoded...)
	return nil
}

func (w *Writer) encodingError(col int, err error) error {
	ce := &common.Error{Code: common.Encoding, Record: w.rows - 1, Err: err}
	if col < len(w.header) {
		ce.Field = w.header[col]
	}
	return ce
}

// appendField appends field to dst, quoted if it contains the delimiter, a
// quote or a line terminator. An empty field that is alone on its row is
// quoted so the row does not read back as a blank line.
func appendField(dst []byte, field string, only bool) []byte {
	if !fieldNeedsQuote(field) && !(only && field == "") {
		return append(dst, field...)
	}

	dst = append(dst, quote)
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == quote {
			dst = append(dst, field[start:i+1]...)
			dst = append(dst, quote)
			start = i + 1
		}
	}
	dst = append(dst, field[start:]...)
	return append(dst, quote)
}

func fieldNeedsQuote(field string) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case quote, comma, '\n', '\r':
			return true
		}
	}
	return false
}

// WriteTable writes the header and every row of table to w. w is not closed.
func WriteTable(table *common.Table, w io.Writer, config *common.ConversionConfig) error {
	cfg := config.OrDefault()

	cw, err := NewWriter(w, cfg.Encoding)
	if err != nil {
		return err
	}
	cw.UseCRLF = cfg.UseCRLF

	if err := cw.Write(table.Header); err != nil {
		return err
	}

	record := make([]string, len(table.Header))
	for _, row := range table.Rows {
		for i, val := range row {
			record[i] = val.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	if cfg.Verbose {
		log.Printf("[JSON2CSV] Wrote %d CSV rows (%s)", cw.Rows(), cfg.Encoding)
	}
	return nil
}
